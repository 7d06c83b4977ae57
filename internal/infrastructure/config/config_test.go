package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_DEV", "true")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_GLOBAL_RPS", "50")
	t.Setenv("UNITS_DIR", "/etc/ucalc/units")
	t.Setenv("UNITS_TIMEOUT", "3s")
	t.Setenv("SESSION_STORE_PATH", "/var/lib/ucalc")
	t.Setenv("SESSION_MAX_IDLE", "1h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Logging.Development)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 50, cfg.RateLimit.GlobalRequestsPerSecond)
	assert.Equal(t, "/etc/ucalc/units", cfg.Catalog.Dir)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "/var/lib/ucalc", cfg.Session.StorePath)
	assert.Equal(t, time.Hour, cfg.Session.MaxIdle)
}

func TestLoadOrDefaultOnBadValue(t *testing.T) {
	t.Setenv("SESSION_MAX_IDLE", "forever")

	_, err := Load()
	assert.Error(t, err)
	assert.Equal(t, Default(), LoadOrDefault())
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	cfg := Default()
	cfg.Server.Port = "http"
	cfg.Catalog.URL = "ftp://units.example.com/extra.toml"
	cfg.Session.MaxIdle = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid port "http"`)
	assert.Contains(t, err.Error(), "not http(s)")
	assert.Contains(t, err.Error(), "max idle")

	cfg = Default()
	cfg.RateLimit.GlobalRequestsPerSecond = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.RateLimit.Enabled = false
	cfg.RateLimit.RequestsPerSecond = 0
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("PORT", "70000")
	_, err := Load()
	assert.Error(t, err)
}
