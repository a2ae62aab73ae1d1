package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(databaseDSNEnv, "")
	t.Setenv(alphaAPIKeyEnv, "")

	cfg := Load()

	assert.Equal(t, "BTC", cfg.Alpha.Symbol)
	assert.Equal(t, "EUR", cfg.Alpha.Market)
	assert.Equal(t, "https://u.today/search/node?keys=bitcoin", cfg.Scraper.URL)
	assert.Equal(t, 30*time.Second, cfg.Alpha.Timeout)
	assert.Equal(t, "UTC", cfg.Scheduler.Location().String())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(databaseDSNEnv, "postgres://ingest:secret@db:5432/coinpulse")
	t.Setenv(alphaAPIKeyEnv, "live-key")

	cfg := Load()

	assert.Equal(t, "postgres://ingest:secret@db:5432/coinpulse", cfg.Database.DSN)
	assert.Equal(t, "live-key", cfg.Alpha.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileMergedWithEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
alpha:
  symbol: ETH
  market: USD
scheduler:
  cronExpression: "30 5 * * *"
`)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	t.Setenv(configPathEnv, path)
	t.Setenv(databaseDSNEnv, "postgres://localhost/coinpulse")
	t.Setenv(alphaAPIKeyEnv, "k")

	cfg := Load()

	assert.Equal(t, "ETH", cfg.Alpha.Symbol)
	assert.Equal(t, "USD", cfg.Alpha.Market)
	assert.Equal(t, "30 5 * * *", cfg.Scheduler.CronExpression)
	// env still wins for credentials
	assert.Equal(t, "postgres://localhost/coinpulse", cfg.Database.DSN)
}

func TestValidateMissingRequired(t *testing.T) {
	cfg := defaultConfig()

	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)

	cfg.Alpha.APIKey = "k"
	assert.ErrorIs(t, cfg.Validate(), ErrMissingDSN)

	cfg.Database.DSN = "postgres://localhost/coinpulse"
	assert.NoError(t, cfg.Validate())
}
