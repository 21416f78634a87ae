package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{"PORT", "GRPC_PORT", "REDIS_URL", "LOG_LEVEL", "SEED_FILE", "SHUTDOWN_TIMEOUT", "ORDER_STATUS_CHANNEL", "EVENT_CHANNEL_PREFIX"}

// clearEnv unsets every key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Config{
		Port:               "8080",
		GRPCPort:           "9090",
		LogLevel:           "info",
		ShutdownTimeout:    5 * time.Second,
		OrderStatusChannel: "order.status",
		EventPrefix:        "grubdash.",
	}, cfg)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("GRPC_PORT", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED_FILE", "seed.yaml")
	t.Setenv("SHUTDOWN_TIMEOUT", "250ms")
	t.Setenv("EVENT_CHANNEL_PREFIX", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Empty(t, cfg.GRPCPort)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "seed.yaml", cfg.SeedFile)
	assert.Equal(t, 250*time.Millisecond, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.EventPrefix)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "4000")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=5000\nLOG_LEVEL=warn\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port, "environment wins over .env")
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"PORT":             "http",
		"GRPC_PORT":        "70000",
		"SHUTDOWN_TIMEOUT": "soon",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load("")
			assert.ErrorContains(t, err, key)
		})
	}
}
