package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	GRPCPort           string
	RedisURL           string
	LogLevel           string
	SeedFile           string
	ShutdownTimeout    time.Duration
	OrderStatusChannel string
	EventPrefix        string
}

// Load reads the configuration from the environment. Values from envFile are
// applied first without overriding variables that are already set; a missing
// file is ignored.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		GRPCPort:           getEnv("GRPC_PORT", "9090"),
		RedisURL:           os.Getenv("REDIS_URL"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		SeedFile:           os.Getenv("SEED_FILE"),
		OrderStatusChannel: getEnv("ORDER_STATUS_CHANNEL", "order.status"),
		EventPrefix:        getEnv("EVENT_CHANNEL_PREFIX", "grubdash."),
	}

	timeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout = timeout

	for name, port := range map[string]string{"PORT": cfg.Port, "GRPC_PORT": cfg.GRPCPort} {
		if port == "" && name == "GRPC_PORT" {
			continue
		}
		if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
			return Config{}, fmt.Errorf("%s: invalid port %q", name, port)
		}
	}

	return cfg, nil
}

// getEnv returns fallback when key is unset. A key set to the empty string
// stays empty, which is how optional listeners are switched off.
func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
