// Package config loads application configuration from YAML and environment
// variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration structure.
type Config struct {
	API   APIConfig   `mapstructure:"api"`
	UI    UIConfig    `mapstructure:"ui"`
	Debug bool        `mapstructure:"debug"`
}

// APIConfig holds upstream statistics API parameters.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UIConfig holds user interface preferences.
type UIConfig struct {
	Theme           string        `mapstructure:"theme"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	DateFormat      string        `mapstructure:"date_format"`
	DefaultRange    string        `mapstructure:"default_range"`
}

// Load reads configuration from ~/.config/svitlo-stats/config.yaml (or the
// working directory) plus SVITLO_-prefixed environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.config/svitlo-stats")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SVITLO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	applyDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file: defaults plus environment are enough.
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the configuration values.
func Validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url cannot be empty")
	}
	if !strings.HasPrefix(cfg.API.BaseURL, "http://") && !strings.HasPrefix(cfg.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must start with http:// or https://, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout < time.Second || cfg.API.Timeout > 2*time.Minute {
		return fmt.Errorf("api.timeout must be between 1s and 2m, got %v", cfg.API.Timeout)
	}

	validThemes := []string{"dark", "light"}
	validTheme := false
	for _, theme := range validThemes {
		if cfg.UI.Theme == theme {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("ui.theme must be one of: %v, got %s", validThemes, cfg.UI.Theme)
	}

	if cfg.UI.RefreshInterval < 5*time.Second || cfg.UI.RefreshInterval > 10*time.Minute {
		return fmt.Errorf("ui.refresh_interval must be between 5s and 10m, got %v", cfg.UI.RefreshInterval)
	}

	validRanges := []string{"1h", "1d", "7d", "30d", "all"}
	validRange := false
	for _, r := range validRanges {
		if cfg.UI.DefaultRange == r {
			validRange = true
			break
		}
	}
	if !validRange {
		return fmt.Errorf("ui.default_range must be one of: %v, got %s", validRanges, cfg.UI.DefaultRange)
	}

	return nil
}

func applyDefaults() {
	viper.SetDefault("api.base_url", "https://svitlo.coderak.net")
	viper.SetDefault("api.timeout", "15s")

	viper.SetDefault("ui.theme", "dark")
	viper.SetDefault("ui.refresh_interval", "60s")
	viper.SetDefault("ui.date_format", "2006-01-02 15:04:05")
	viper.SetDefault("ui.default_range", "1d")

	viper.SetDefault("debug", false)
}
