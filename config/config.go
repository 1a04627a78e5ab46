package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. MATCHBOARD_LOGGING_LEVEL
const EnvPrefix = "MATCHBOARD"

// MinRequestInterval is the lowest accepted football_data.min_interval
const MinRequestInterval = time.Second

// Load loads the configuration from file and environment. A missing file is
// only an error when configPath was given explicitly.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".matchboard"))
		}

		// Check /etc
		v.AddConfigPath("/etc/matchboard/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// football-data defaults
	v.SetDefault("football_data.api_token", "")
	v.SetDefault("football_data.mode", "direct")
	v.SetDefault("football_data.base_url", "https://api.football-data.org/v4")
	v.SetDefault("football_data.proxy_url", "")
	v.SetDefault("football_data.min_interval", "1s")
	v.SetDefault("football_data.quota_per_minute", 0)
	v.SetDefault("football_data.timeout", "0s")

	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", "10s")

	// Output defaults
	v.SetDefault("output.format", "table")
	v.SetDefault("output.show_details", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// bindEnv maps environment variables onto config keys. The token also
// accepts the conventional FOOTBALL_DATA_API_TOKEN.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("football_data.api_token", EnvPrefix+"_FOOTBALL_DATA_API_TOKEN", "FOOTBALL_DATA_API_TOKEN")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	fd := cfg.FootballData

	validModes := map[string]bool{
		"direct": true,
		"proxy":  true,
	}
	if !validModes[fd.Mode] {
		return fmt.Errorf("invalid football_data.mode: %s (must be 'direct' or 'proxy')", fd.Mode)
	}
	if fd.Mode == "proxy" && fd.ProxyURL == "" {
		return fmt.Errorf("football_data.proxy_url is required in proxy mode")
	}
	if fd.Mode == "direct" && fd.BaseURL == "" {
		return fmt.Errorf("football_data.base_url is required in direct mode")
	}

	if fd.MinInterval < MinRequestInterval {
		return fmt.Errorf("football_data.min_interval must be at least %s, got %s", MinRequestInterval, fd.MinInterval)
	}
	if fd.QuotaPerMinute < 0 {
		return fmt.Errorf("football_data.quota_per_minute cannot be negative")
	}
	if fd.Timeout < 0 {
		return fmt.Errorf("football_data.timeout cannot be negative")
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter preset '%s' has an empty expression", name)
		}
	}

	// Validate output format
	validOutputs := map[string]bool{
		"table": true,
		"json":  true,
		"yaml":  true,
	}
	if !validOutputs[cfg.Output.Format] {
		return fmt.Errorf("invalid output.format: %s", cfg.Output.Format)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
