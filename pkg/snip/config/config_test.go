package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.DBPath != "snip.db" {
		t.Errorf("DBPath = %s, want snip.db", cfg.DBPath)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %s, want http://localhost:8080", cfg.BaseURL)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("JWTTTL = %v, want 24h", cfg.JWTTTL)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SNIP_DB_PATH", "/tmp/test.db")
	t.Setenv("SNIP_BASE_URL", "https://sn.ip/")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_TTL", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Port)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %s, want /tmp/test.db", cfg.DBPath)
	}
	if cfg.BaseURL != "https://sn.ip" {
		t.Errorf("BaseURL = %s, want https://sn.ip (trailing slash trimmed)", cfg.BaseURL)
	}
	if cfg.JWTSecret != "test-secret" {
		t.Errorf("JWTSecret = %s, want test-secret", cfg.JWTSecret)
	}
	if cfg.JWTTTL != time.Hour {
		t.Errorf("JWTTTL = %v, want 1h", cfg.JWTTTL)
	}
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	t.Setenv("SNIP_BASE_URL", "localhost:8080")

	if _, err := Load(); err == nil {
		t.Error("Expected error for base URL without scheme")
	}
}

func TestLoad_InvalidTTL(t *testing.T) {
	t.Setenv("JWT_TTL", "-5m")

	if _, err := Load(); err == nil {
		t.Error("Expected error for negative JWT TTL")
	}
}
