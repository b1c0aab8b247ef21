package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.History.Backend != "file" {
		t.Errorf("default history backend = %q, want file", cfg.History.Backend)
	}
	if cfg.Metrics.Provider != "auto" {
		t.Errorf("default metrics provider = %q, want auto", cfg.Metrics.Provider)
	}
	if cfg.Metrics.TopCount != 10 {
		t.Errorf("default top count = %d, want 10", cfg.Metrics.TopCount)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config file was not written: %v", err)
	}
}

func TestLoadReadsUserOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte("history:\n  backend: sqlite\nmetrics:\n  provider: procfs\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.History.Backend != "sqlite" {
		t.Errorf("history backend = %q, want sqlite", cfg.History.Backend)
	}
	if cfg.Metrics.Provider != "procfs" {
		t.Errorf("metrics provider = %q, want procfs", cfg.Metrics.Provider)
	}
	// unset fields are hydrated
	if cfg.Prompt.Format == "" {
		t.Error("prompt format should fall back to a default")
	}
	if cfg.History.RecallLimit == 0 {
		t.Error("recall limit should fall back to a default")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("history: ["), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
