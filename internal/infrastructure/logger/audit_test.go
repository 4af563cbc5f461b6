package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewAudit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")

	audit := NewAudit(path)
	audit.Info("remote call", zap.String("endpoint", "resources/partner"))
	require.NoError(t, audit.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "remote call")
	assert.Contains(t, string(data), "resources/partner")
}

func TestNewAudit_EmptyPathIsNop(t *testing.T) {
	audit := NewAudit("")

	// Must not panic or write anywhere.
	audit.Info("remote call")
	assert.NotNil(t, audit)
}

func TestNewAudit_UnwritablePathFallsBack(t *testing.T) {
	audit := NewAudit(filepath.Join(t.TempDir(), "missing", "nested", "audit.log"))

	audit.Info("remote call")
	assert.NotNil(t, audit)
}
