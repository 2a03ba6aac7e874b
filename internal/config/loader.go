package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBot loads the bot configuration.
// Search order: customPath -> ~/.stackbot/configs/bot.yaml -> ./configs/bot.yaml -> embedded default
func LoadBot(customPath string) (BotConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BotConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseBot(data)
		if err != nil {
			return BotConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("bot.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseBot(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "bot.yaml")); err == nil {
		if cfg, err := ParseBot(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseBot(defaultBotYAML)
	if err != nil {
		return DefaultBotConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseBot decodes bot.yaml on top of the hard-coded defaults, so a partial
// file only changes what it mentions, then validates all three tiers.
func ParseBot(data []byte) (BotConfig, error) {
	cfg := DefaultBotConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BotConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BotConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stackbot", "configs", filename)
}
