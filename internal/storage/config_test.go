package storage

import "testing"

func TestResolveConfigEnvOverridePath(t *testing.T) {
	t.Setenv("CYCLEDASH_DB_PATH", "/tmp/cycledash-custom.db")

	cfg, err := resolveConfig("/tmp/from-config-file.db")
	if err != nil {
		t.Fatalf("resolveConfig() unexpected error: %v", err)
	}
	if cfg.Mode != ModeSecure {
		t.Fatalf("cfg.Mode = %q, want %q", cfg.Mode, ModeSecure)
	}
	if cfg.Path != "/tmp/cycledash-custom.db" {
		t.Fatalf("cfg.Path = %q, want %q", cfg.Path, "/tmp/cycledash-custom.db")
	}
}

func TestResolveConfigUsesExplicitPath(t *testing.T) {
	t.Setenv("CYCLEDASH_DB_PATH", "")

	cfg, err := resolveConfig("/tmp/from-config-file.db")
	if err != nil {
		t.Fatalf("resolveConfig() unexpected error: %v", err)
	}
	if cfg.Path != "/tmp/from-config-file.db" {
		t.Fatalf("cfg.Path = %q, want %q", cfg.Path, "/tmp/from-config-file.db")
	}
}

func TestResolveConfigFallsBackToUserConfigDir(t *testing.T) {
	t.Setenv("CYCLEDASH_DB_PATH", "")

	cfg, err := resolveConfig("")
	if err != nil {
		t.Fatalf("resolveConfig() unexpected error: %v", err)
	}
	if cfg.Path == "" {
		t.Fatal("cfg.Path is empty")
	}
}
