package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppliesDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("CYCLEDASH_BASE_URL", "")
	t.Setenv("CYCLEDASH_DB_PATH", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Service.BaseURL != "https://etf-backend.codecatalystworks.com/api" {
		t.Fatalf("base URL = %q, want default", cfg.Service.BaseURL)
	}
	if cfg.Timeout() != 15*time.Second {
		t.Fatalf("timeout = %v, want 15s", cfg.Timeout())
	}
	if cfg.Database.Path == "" {
		t.Fatal("database path not defaulted")
	}
}

func TestLoadReadsFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "service:\n  base_url: https://file.test/api\n  timeout_seconds: 30\ndatabase:\n  path: /tmp/file.db\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CYCLEDASH_BASE_URL", "https://env.test/api")
	t.Setenv("CYCLEDASH_DB_PATH", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Service.BaseURL != "https://env.test/api" {
		t.Fatalf("base URL = %q, want env override", cfg.Service.BaseURL)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Fatalf("timeout = %v, want 30s from file", cfg.Timeout())
	}
	if cfg.Database.Path != "/tmp/file.db" {
		t.Fatalf("database path = %q, want /tmp/file.db", cfg.Database.Path)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("service: [not a mapping"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() accepted malformed YAML")
	}
}
