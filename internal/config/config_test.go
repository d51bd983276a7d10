package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "" || cfg.WarningsAsErrors || cfg.JSONDiagnostics {
		t.Fatalf("expected zero-value config, got %+v", cfg)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".mipc.yaml")
	content := "outputDir: build\nwarningsAsErrors: true\njsonDiagnostics: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "build" || !cfg.WarningsAsErrors || !cfg.JSONDiagnostics {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
