package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load parses the market profile file at path after ${VAR} substitution.
// Fields left out of the file stay zero.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open market profiles: %w", err)
	}
	cfg, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("market profiles %s: %w", path, err)
	}
	return cfg, nil
}

func parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), &cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &cfg, nil
}

// LoadWithDefaults is Load with zero market fields filled from the
// Default* constants.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate is LoadWithDefaults followed by Validate, so every
// returned profile is usable by density.FromParams.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("market profiles %s: %w", path, err)
	}
	return cfg, nil
}
