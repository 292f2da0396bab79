package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"ARBITER_HTTP_HOST", "ARBITER_HTTP_PORT",
		"ARBITER_DB_URL", "ARBITER_DB_POOL_SIZE", "ARBITER_JWT_SECRET",
	}
	saved := make(map[string]string, len(keys))
	for _, k := range keys {
		saved[k] = os.Getenv(k)
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for k, v := range saved {
			os.Setenv(k, v)
		}
	})
}

func TestLoadFromEnvAppliesDefaults(t *testing.T) {
	clearEnv(t)
	os.Setenv("ARBITER_DB_URL", "./data/arbiter.db")
	os.Setenv("ARBITER_JWT_SECRET", "secret")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.HTTPHost)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, defaultPoolSize, cfg.DBPoolSize)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoadFromEnvRejectsMissingRequiredKeys(t *testing.T) {
	clearEnv(t)
	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestLoadFromEnvParsesPoolSize(t *testing.T) {
	clearEnv(t)
	os.Setenv("ARBITER_DB_URL", "./data/arbiter.db")
	os.Setenv("ARBITER_JWT_SECRET", "secret")
	os.Setenv("ARBITER_DB_POOL_SIZE", "16")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.DBPoolSize)
}
