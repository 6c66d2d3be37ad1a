package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test formatter defaults
	if cfg.Format.Style != "default" {
		t.Errorf("Expected Style=default, got %s", cfg.Format.Style)
	}
	if cfg.Format.CommandColumn != 8 {
		t.Errorf("Expected CommandColumn=8, got %d", cfg.Format.CommandColumn)
	}
	if !cfg.Format.AlignComments {
		t.Error("Expected AlignComments=true")
	}

	// Test linter defaults
	if cfg.Lint.Strict {
		t.Error("Expected Strict=false")
	}
	if !cfg.Lint.CheckLineOrder {
		t.Error("Expected CheckLineOrder=true")
	}

	// Test display defaults
	if !cfg.Display.ColorOutput {
		t.Error("Expected ColorOutput=true")
	}

	// Test API defaults
	if cfg.API.Port != 8080 {
		t.Errorf("Expected Port=8080, got %d", cfg.API.Port)
	}
	if cfg.API.MaxSourceSize != 4<<20 {
		t.Errorf("Expected MaxSourceSize=4MB, got %d", cfg.API.MaxSourceSize)
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	// Verify path is not empty
	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}

	// Verify path ends with config.toml
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}
}

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("Expected default Port=8080, got %d", cfg.API.Port)
	}
}

func TestLoadFrom_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[format]
style = "compact"
command_column = 0

[lint]
strict = true

[api]
port = 9999
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Format.Style != "compact" {
		t.Errorf("Expected Style=compact, got %s", cfg.Format.Style)
	}
	if !cfg.Lint.Strict {
		t.Error("Expected Strict=true")
	}
	if cfg.API.Port != 9999 {
		t.Errorf("Expected Port=9999, got %d", cfg.API.Port)
	}
	// Unset values keep their defaults
	if cfg.Format.CommentColumn != 40 {
		t.Errorf("Expected CommentColumn default 40, got %d", cfg.Format.CommentColumn)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.toml")

	cfg := DefaultConfig()
	cfg.API.Port = 7777
	cfg.Format.Style = "expanded"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.API.Port != 7777 {
		t.Errorf("Expected Port=7777, got %d", loaded.API.Port)
	}
	if loaded.Format.Style != "expanded" {
		t.Errorf("Expected Style=expanded, got %s", loaded.Format.Style)
	}
}
