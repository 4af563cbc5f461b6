package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/storesync/backend/internal/application/catalog"
	orderapp "github.com/storesync/backend/internal/application/order"
	printingapp "github.com/storesync/backend/internal/application/printing"
	syncapp "github.com/storesync/backend/internal/application/sync"
	"github.com/storesync/backend/internal/infrastructure/cache"
	"github.com/storesync/backend/internal/infrastructure/config"
	"github.com/storesync/backend/internal/infrastructure/erp"
	"github.com/storesync/backend/internal/infrastructure/licensing"
	"github.com/storesync/backend/internal/infrastructure/logger"
	"github.com/storesync/backend/internal/infrastructure/persistence"
	"github.com/storesync/backend/internal/infrastructure/printing"
	"github.com/storesync/backend/internal/interfaces/http/handler"
	"github.com/storesync/backend/internal/interfaces/http/middleware"
	"github.com/storesync/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront sync backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with query logging through zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	configProvider := persistence.NewGormConfigProvider(db.DB)
	zoneMatcher := persistence.NewGormZoneMatcher(db.DB)

	// Remote ERP gateway with its dedicated audit log
	auditLog := logger.NewAudit(cfg.Log.AuditPath)
	gateway := erp.NewClient(erp.Config{
		BaseURL: cfg.ERP.BaseURL,
		Token:   cfg.ERP.Token,
		Timeout: cfg.ERP.Timeout,
	}, auditLog)

	// License gate backed by Redis with an in-memory fallback
	licenseStore := cache.NewLicenseStore(cfg.Redis, log)
	licenseChecker := licensing.NewChecker(cfg.License, licenseStore, log)

	// Application services
	orderService := orderapp.NewService(orderRepo, log)
	productSyncService := catalogapp.NewProductSyncService(productRepo, gateway, log)

	branchRouter := syncapp.NewBranchRouter(zoneMatcher, log)
	partnerResolver := syncapp.NewPartnerResolver(gateway, customerRepo, log)
	lineMapper := syncapp.NewLineMapper(gateway, log)
	orchestrator := syncapp.NewOrchestrator(
		orderRepo, customerRepo, configProvider, gateway,
		branchRouter, partnerResolver, lineMapper, log,
	)

	invoiceRenderer, err := printing.NewHTMLInvoiceRenderer()
	if err != nil {
		log.Fatal("Failed to initialize invoice renderer", zap.Error(err))
	}
	invoiceService := printingapp.NewInvoiceService(
		orderRepo, invoiceRenderer,
		cfg.StatusLink.BaseURL, cfg.StatusLink.Secret, log,
	)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint
	engine.GET("/health", healthHandler(db))

	// HTTP handlers. Sync-facing routes sit behind the license gate; the
	// status-update link and health stay open so delivery staff and probes
	// are never blocked by a license hiccup.
	licenseGate := middleware.LicenseGate(licenseChecker)

	orderHandler := handler.NewOrderHandler(orderService, orchestrator)
	inventoryHandler := handler.NewInventoryHandler(productSyncService)
	productHandler := handler.NewProductHandler(productSyncService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	statusHandler := handler.NewStatusPageHandler(orderService, cfg.StatusLink.Secret)
	systemHandler := handler.NewSystemHandler()

	gated := engine.Group("", licenseGate)
	orderHandler.RegisterRoutes(gated)
	inventoryHandler.RegisterRoutes(gated)
	productHandler.RegisterRoutes(gated)

	router.NewRouter(engine).
		Register(invoiceHandler, statusHandler, systemHandler).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
