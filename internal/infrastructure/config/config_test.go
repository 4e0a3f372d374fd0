package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iho/gowallet/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := config.LoadFiles()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.StorageDriver != config.StorageMemory {
		t.Fatalf("expected memory storage by default, got %s", cfg.StorageDriver)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if !cfg.SerializeWrites {
		t.Fatalf("expected writes to be serialized by default")
	}

	if cfg.DemoUserID != 1 || !cfg.SeedDemoData {
		t.Fatalf("unexpected demo defaults: id=%d seed=%v", cfg.DemoUserID, cfg.SeedDemoData)
	}

	if len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("expected no kafka brokers, got %v", cfg.KafkaBrokers)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOCK_TTL", "3s")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("SERIALIZE_WRITES", "false")

	cfg, err := config.LoadFiles()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.LockTTL != 3*time.Second {
		t.Fatalf("expected lock ttl override, got %s", cfg.LockTTL)
	}

	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("expected two kafka brokers, got %v", cfg.KafkaBrokers)
	}

	if cfg.SerializeWrites {
		t.Fatalf("expected SERIALIZE_WRITES=false to be honored")
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.LoadFiles(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadInvalidStorageDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")

	if _, err := config.LoadFiles(); err == nil {
		t.Fatalf("expected error for unknown storage driver")
	}
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "HTTP_PORT=7070\nLOG_LEVEL=debug\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	t.Setenv("HTTP_PORT", "9191")
	// LOG_LEVEL must be unset for the file value to apply. t.Setenv restores it.
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := config.LoadFiles(path, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPPort != "9191" {
		t.Fatalf("expected real environment to win, got %s", cfg.HTTPPort)
	}

	if cfg.LogLevel != "debug" {
		t.Fatalf("expected .env value to apply, got %s", cfg.LogLevel)
	}
}
