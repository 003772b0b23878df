package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	LogLevel slog.Level
	HTTPAddr string

	// StreamAddr is the listen address of the websocket snapshot feed.
	// Empty disables the feed.
	StreamAddr string

	// DBDSN is the postgres DSN. Empty selects the in-memory store.
	DBDSN         string
	MigrationsDir string

	TickInterval     time.Duration
	StoreTimeout     time.Duration
	WriteConcurrency int
}

func Load() Config {
	return Config{
		LogLevel:         getLogLevelEnv("LOG_LEVEL", slog.LevelInfo),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		StreamAddr:       getEnv("STREAM_ADDR", ":8081"),
		DBDSN:            os.Getenv("FLEETSIM_DB_DSN"),
		MigrationsDir:    getEnv("MIGRATIONS_DIR", "./migrations"),
		TickInterval:     getDurationEnv("TICK_INTERVAL", 2*time.Second),
		StoreTimeout:     getDurationEnv("STORE_TIMEOUT", 5*time.Second),
		WriteConcurrency: getIntEnv("WRITE_CONCURRENCY", 4),
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getLogLevelEnv(key string, defaultVal slog.Level) slog.Level {
	switch strings.ToLower(os.Getenv(key)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return defaultVal
	}
}
