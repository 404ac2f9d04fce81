package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a csfix configuration from the given YAML file path.
// After parsing, it fills in defaults for values the file leaves unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault searches for a config in standard locations and loads the first
// one found. Search order: ./.csfix.yaml, ~/.csfix/config.yaml. When no file
// exists, a config holding only defaults is returned; the tool runs fine
// without any file on disk.
func LoadDefault() (*Config, error) {
	candidates := []string{".csfix.yaml"}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append(candidates, filepath.Join(home, ".csfix", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	cfg := &Config{}
	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults fills in the fixer parameter string and extension filter when
// the file leaves them unset.
func applyDefaults(cfg *Config) {
	if cfg.Parameters == "" {
		cfg.Parameters = DefaultParameters
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), DefaultExtensions...)
	}
}
