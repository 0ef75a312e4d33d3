package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadCoins loads the coin game configuration.
// Search order: customPath -> ~/.stepcoins/configs/coins.{yaml,toml} ->
// ./configs/coins.{yaml,toml} -> embedded default.
// Files ending in .toml are decoded as TOML, everything else as YAML.
// Missing fields keep their default values.
func LoadCoins(customPath string) (CoinsConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	candidates := []string{}
	if dir := userConfigDir(); dir != "" {
		candidates = append(candidates,
			filepath.Join(dir, "coins.yaml"),
			filepath.Join(dir, "coins.toml"),
		)
	}
	candidates = append(candidates,
		filepath.Join("configs", "coins.yaml"),
		filepath.Join("configs", "coins.toml"),
	)

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if cfg, err := loadFile(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultCoinsConfig()
	if err := yaml.Unmarshal(defaultCoinsYAML, &cfg); err != nil {
		return DefaultCoinsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// loadFile decodes one config file on top of the defaults.
func loadFile(path string) (CoinsConfig, error) {
	cfg := DefaultCoinsConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigDir returns ~/.stepcoins/configs, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stepcoins", "configs")
}
