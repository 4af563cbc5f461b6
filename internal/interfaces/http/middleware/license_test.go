package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubChecker struct {
	licensed bool
}

func (s stubChecker) IsLicensed(ctx context.Context) bool {
	return s.licensed
}

func gatedEngine(licensed bool) *gin.Engine {
	engine := gin.New()
	engine.GET("/gated", LicenseGate(stubChecker{licensed: licensed}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return engine
}

func TestLicenseGate_AllowsLicensed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	w := httptest.NewRecorder()
	gatedEngine(true).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLicenseGate_RejectsUnlicensed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	w := httptest.NewRecorder()
	gatedEngine(false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_UNLICENSED")
}
