package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CURATOR_CONFIG", "")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database != "curator.db" || cfg.Instance != "curator" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curator.yaml")
	content := "database: /data/curator.db\ndefault_publisher: IEDA\ninstance: prod\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database != "/data/curator.db" || cfg.DefaultPublisher != "IEDA" || cfg.Instance != "prod" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadExplicitMissingPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("explicit missing config must error")
	}
}

func TestLoadEnvFallbackMissingPath(t *testing.T) {
	t.Setenv("CURATOR_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("fallback missing config must not error: %v", err)
	}
	if cfg.Database != "curator.db" {
		t.Errorf("cfg = %+v", cfg)
	}
}
