package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceEmbedded names the built-in configuration in LoadFlappy results.
const SourceEmbedded = "embedded"

const flappyFile = "flappy.yaml"

// LoadFlappy loads Flappy Bird configuration and reports where it came from.
// Search order: customPath -> ~/.flappy/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default
// Files only need to set the values they change; everything else keeps its
// default.
func LoadFlappy(customPath string) (FlappyConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FlappyConfig{}, "", fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseFlappy(data)
		if err != nil {
			return FlappyConfig{}, "", fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{UserConfigPath(), filepath.Join("configs", flappyFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseFlappy(data); err == nil {
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseFlappy(defaultFlappyYAML)
	if err != nil {
		return DefaultFlappyConfig(), SourceEmbedded, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// parseFlappy decodes data over the defaults.
func parseFlappy(data []byte) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FlappyConfig{}, err
	}
	return cfg, nil
}

// UserConfigPath returns the path to the user config file, or empty if home
// is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", "configs", flappyFile)
}

// WriteDefault writes the embedded default configuration to path, creating
// parent directories. An existing file is only replaced when overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if path == "" {
		return errors.New("config: no path to write")
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config: %s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	if err := os.WriteFile(path, defaultFlappyYAML, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg FlappyConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
