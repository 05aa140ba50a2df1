package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "gigboard")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("HTTP_PORT", "")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for missing env")
	}
	msg := err.Error()
	if !strings.Contains(msg, "HTTP_PORT") || !strings.Contains(msg, "JWT_ACCESS_SECRET") {
		t.Fatalf("error should name every missing key: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Fatalf("access expiry default = %s", cfg.JWT.AccessExpiresIn)
	}
	if cfg.JWT.RefreshExpiresIn != 7*24*time.Hour {
		t.Fatalf("refresh expiry default = %s", cfg.JWT.RefreshExpiresIn)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "30m")
	t.Setenv("DB_POOL_MAX_CONNS", "12")
	t.Setenv("DB_CONNECT_TIMEOUT", "3s")
	t.Setenv("DB_MIGRATIONS_DIR", "migrations")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWT.AccessExpiresIn != 30*time.Minute {
		t.Fatalf("access expiry = %s, want 30m", cfg.JWT.AccessExpiresIn)
	}
	if cfg.Database.PoolMaxConns != 12 {
		t.Fatalf("pool max conns = %d, want 12", cfg.Database.PoolMaxConns)
	}
	if cfg.Database.ConnectTimeout != 3*time.Second {
		t.Fatalf("connect timeout = %s, want 3s", cfg.Database.ConnectTimeout)
	}
	if cfg.Database.MigrationsDir != "migrations" {
		t.Fatalf("migrations dir = %q", cfg.Database.MigrationsDir)
	}
}

func TestLoad_BadOptionalFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "soon")
	t.Setenv("DB_POOL_MAX_CONNS", "-4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Fatalf("bad duration should fall back to default, got %s", cfg.JWT.AccessExpiresIn)
	}
	if cfg.Database.PoolMaxConns != 0 {
		t.Fatalf("bad int should fall back to zero, got %d", cfg.Database.PoolMaxConns)
	}
}
