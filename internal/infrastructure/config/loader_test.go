package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileLoaderWritesDefaultOnFirstLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Actions) == 0 || len(cfg.Filters) == 0 {
		t.Errorf("default pipeline is empty: %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config not written: %v", err)
	}
}

func TestFileLoaderReadsExistingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	raw := `
scope: ops
actions:
  - id: ops/db/backup
    command: pg_dump mydb
filters:
  - name: guard
    type: access
    only:
      - db/*
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Scope != "ops" {
		t.Errorf("Scope = %q, want ops", cfg.Scope)
	}
	if !cfg.HasAction("ops/db/backup") {
		t.Error("configured action missing")
	}
	f, ok := cfg.FindFilter("guard")
	if !ok || f.Type != "access" {
		t.Errorf("filter guard = %+v, found %v", f, ok)
	}
}

func TestFileLoaderHydratesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	raw := `
actions:
  - id: health/check
    command: uptime
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ConfigFormatVersion != "1" {
		t.Errorf("ConfigFormatVersion = %q, want 1", cfg.ConfigFormatVersion)
	}
	if cfg.Execution.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want hydrated 30", cfg.Execution.TimeoutSeconds)
	}
	if cfg.Cache.TTLSeconds != 3600 {
		t.Errorf("TTLSeconds = %d, want hydrated 3600", cfg.Cache.TTLSeconds)
	}
}

func TestFileLoaderRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte("actions: [not: closed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
