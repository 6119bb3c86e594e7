package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Ignore         []string `yaml:"ignore"`
	ShowHidden     bool     `yaml:"show_hidden"`
	FollowSymlinks bool     `yaml:"follow_symlinks"`
	Gitignore      bool     `yaml:"gitignore"`
	PromptIgnore   bool     `yaml:"prompt_ignore"`
	TUI            bool     `yaml:"tui"`
}

func DefaultConfig() *Config {
	return &Config{
		Ignore:       []string{},
		PromptIgnore: true,
	}
}

// LoadConfig reads a YAML config. Keys absent from the file keep their
// defaults, and a missing file yields DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if cfg.Ignore == nil {
		cfg.Ignore = []string{}
	}

	return cfg, nil
}
