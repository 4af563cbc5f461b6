package licensing

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/storesync/backend/internal/domain/shared"
	"github.com/storesync/backend/internal/infrastructure/config"
)

const defaultCheckTimeout = 20 * time.Second

// licenseRow is one entry of the license server's response.
type licenseRow struct {
	SiteURL  string `json:"site_url"`
	IsActive string `json:"is_active"`
}

// Checker validates the installation against a remote license server.
//
// The check fails open: when the license server is unreachable, responds with
// an error, or returns an empty body, the installation is treated as licensed
// and that verdict is cached for a short TTL so a license-server outage never
// takes the sync down. A definite verdict is cached for the long TTL.
type Checker struct {
	cfg        config.LicenseConfig
	store      shared.LicenseVerdictStore
	httpClient *http.Client
	logger     *zap.Logger
}

// NewChecker creates a new Checker
func NewChecker(cfg config.LicenseConfig, store shared.LicenseVerdictStore, logger *zap.Logger) *Checker {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultCheckTimeout
	}
	return &Checker{
		cfg:        cfg,
		store:      store,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// IsLicensed reports whether the installation is licensed, consulting the
// cache before the license server.
func (c *Checker) IsLicensed(ctx context.Context) bool {
	if c.cfg.URL == "" {
		return true
	}

	valid, found, err := c.store.GetVerdict(ctx)
	if err != nil {
		c.logger.Warn("could not read cached license verdict", zap.Error(err))
	} else if found {
		return valid
	}

	valid, ttl := c.check(ctx)
	if err := c.store.SetVerdict(ctx, valid, ttl); err != nil {
		c.logger.Warn("could not cache license verdict", zap.Error(err))
	}
	return valid
}

// check consults the license server and returns the verdict together with
// the TTL it should be cached for.
func (c *Checker) check(ctx context.Context) (bool, time.Duration) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		c.logger.Warn("could not build license request", zap.Error(err))
		return true, c.cfg.FailOpenTTL
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("license server unreachable, treating as licensed", zap.Error(err))
		return true, c.cfg.FailOpenTTL
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("license server returned error, treating as licensed",
			zap.Int("status", resp.StatusCode))
		return true, c.cfg.FailOpenTTL
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) == 0 {
		c.logger.Warn("empty license response, treating as licensed")
		return true, c.cfg.FailOpenTTL
	}

	var rows []licenseRow
	if err := json.Unmarshal(body, &rows); err != nil {
		c.logger.Warn("unparseable license response, treating as licensed", zap.Error(err))
		return true, c.cfg.FailOpenTTL
	}

	site := normalizeSiteURL(c.cfg.SiteURL)
	for _, row := range rows {
		if normalizeSiteURL(row.SiteURL) == site {
			if row.IsActive == "1" {
				c.logger.Info("license is active")
				return true, c.cfg.ValidTTL
			}
			c.logger.Warn("license is inactive")
			return false, c.cfg.ValidTTL
		}
	}

	c.logger.Warn("site not found in license registry", zap.String("site_url", c.cfg.SiteURL))
	return false, c.cfg.ValidTTL
}

// normalizeSiteURL strips the scheme and any trailing slash so that
// registration and configuration may disagree on either.
func normalizeSiteURL(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	return strings.TrimSuffix(s, "/")
}
