package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPlatformer loads the platformer configuration.
// Search order: customPath -> ~/.arcade/configs/platformer.yaml -> ./configs/platformer.yaml -> embedded default
// Files only need to list the keys they override; everything else keeps its default.
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultPlatformerConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parsePlatformer(data)
		if err != nil {
			return DefaultPlatformerConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("platformer.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parsePlatformer(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/platformer.yaml"); err == nil {
		if cfg, err := parsePlatformer(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parsePlatformer(defaultPlatformerYAML)
	if err != nil {
		return DefaultPlatformerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parsePlatformer decodes YAML on top of the hardcoded defaults and validates the result.
func parsePlatformer(data []byte) (PlatformerConfig, error) {
	cfg := DefaultPlatformerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports values the simulation cannot run with.
func (c PlatformerConfig) Validate() error {
	var errs []error
	if c.World.ViewWidth <= 0 || c.World.ViewHeight <= 0 {
		errs = append(errs, errors.New("world view size must be positive"))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.Enemy.Width <= 0 || c.Enemy.Height <= 0 {
		errs = append(errs, errors.New("enemy size must be positive"))
	}
	if c.Coin.Size <= 0 {
		errs = append(errs, errors.New("coin size must be positive"))
	}
	if c.Session.Lives <= 0 {
		errs = append(errs, errors.New("session lives must be at least 1"))
	}
	if c.Player.WalkFrames <= 0 {
		errs = append(errs, errors.New("player walk_frames must be at least 1"))
	}
	if c.Clouds.MaxY < c.Clouds.MinY {
		errs = append(errs, errors.New("clouds max_y must not be below min_y"))
	}
	if c.Clouds.MaxScale < c.Clouds.MinScale {
		errs = append(errs, errors.New("clouds max_scale must not be below min_scale"))
	}
	if c.Clouds.Count < 0 || c.Clouds.AttemptsPerCloud < 0 || c.Clouds.FallbackAttempts < 0 {
		errs = append(errs, errors.New("clouds counts must not be negative"))
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyPlatformerPreset modifies the config based on a difficulty preset.
func ApplyPlatformerPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		return
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Session.Lives = 5
		cfg.Enemy.SpeedScale = 0.8
	case DifficultyHard:
		cfg.Session.Lives = 2
		cfg.Enemy.SpeedScale = 1.25
	}
}
