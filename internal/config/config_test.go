package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "happylines.yaml")

	configContent := `ignore:
  - node_modules
  - vendor
show_hidden: true
follow_symlinks: true
gitignore: true
prompt_ignore: false
tui: true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	expected := []string{"node_modules", "vendor"}
	if len(cfg.Ignore) != len(expected) {
		t.Fatalf("Expected %d ignore names, got %d", len(expected), len(cfg.Ignore))
	}
	for i, e := range expected {
		if cfg.Ignore[i] != e {
			t.Errorf("Ignore[%d]: expected %q, got %q", i, e, cfg.Ignore[i])
		}
	}
	if !cfg.ShowHidden || !cfg.FollowSymlinks || !cfg.Gitignore || !cfg.TUI {
		t.Errorf("Expected boolean options enabled, got %+v", cfg)
	}
	if cfg.PromptIgnore {
		t.Errorf("Expected prompt_ignore false")
	}
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/happylines.yaml")
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	if !cfg.PromptIgnore {
		t.Errorf("Expected default prompt_ignore true")
	}
	if len(cfg.Ignore) != 0 {
		t.Errorf("Expected empty ignore list, got %v", cfg.Ignore)
	}
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "happylines.yaml")
	if err := os.WriteFile(configPath, []byte("show_hidden: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.ShowHidden || !cfg.PromptIgnore {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.Ignore == nil {
		t.Errorf("Ignore should never be nil")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "happylines.yaml")
	if err := os.WriteFile(configPath, []byte("ignore: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(configPath); err == nil {
		t.Fatal("Expected error for invalid YAML")
	}
}
