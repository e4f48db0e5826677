package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/insights")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPPort)
	assert.Equal(t, "dev", cfg.AppMode)
	assert.Equal(t, 30*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, 6*time.Hour, cfg.ReportDebounce)
	assert.Equal(t, 7*24*time.Hour, cfg.OptimizerLookback)
	// The optimizer runs on a daily cadence unless overridden.
	assert.Equal(t, 24*time.Hour, cfg.OptimizerInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/insights")
	t.Setenv("APP_MODE", "Production")
	t.Setenv("OPTIMIZER_INTERVAL", "12h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Production())
	assert.Equal(t, 12*time.Hour, cfg.OptimizerInterval)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
}
