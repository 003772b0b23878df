package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.TickInterval != 2*time.Second {
		t.Fatalf("TickInterval = %v", cfg.TickInterval)
	}
	if cfg.WriteConcurrency != 4 {
		t.Fatalf("WriteConcurrency = %d", cfg.WriteConcurrency)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("TICK_INTERVAL", "500ms")
	t.Setenv("WRITE_CONCURRENCY", "8")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FLEETSIM_DB_DSN", "postgres://example")

	cfg := Load()
	if cfg.HTTPAddr != ":9000" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.TickInterval != 500*time.Millisecond {
		t.Fatalf("TickInterval = %v", cfg.TickInterval)
	}
	if cfg.WriteConcurrency != 8 {
		t.Fatalf("WriteConcurrency = %d", cfg.WriteConcurrency)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.DBDSN != "postgres://example" {
		t.Fatalf("DBDSN = %q", cfg.DBDSN)
	}
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("TICK_INTERVAL", "soon")
	t.Setenv("WRITE_CONCURRENCY", "many")

	cfg := Load()
	if cfg.TickInterval != 2*time.Second {
		t.Fatalf("TickInterval = %v, want default", cfg.TickInterval)
	}
	if cfg.WriteConcurrency != 4 {
		t.Fatalf("WriteConcurrency = %d, want default", cfg.WriteConcurrency)
	}
}
