package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	FootballData FootballDataConfig `mapstructure:"football_data"`
	Server       ServerConfig       `mapstructure:"server"`
	Filter       FilterConfig       `mapstructure:"filter"`
	Output       OutputConfig       `mapstructure:"output"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// FootballDataConfig holds football-data.org connection details
type FootballDataConfig struct {
	APIToken       string        `mapstructure:"api_token"`
	Mode           string        `mapstructure:"mode"`
	BaseURL        string        `mapstructure:"base_url"`
	ProxyURL       string        `mapstructure:"proxy_url"`
	MinInterval    time.Duration `mapstructure:"min_interval"`
	QuotaPerMinute int           `mapstructure:"quota_per_minute"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// ServerConfig holds the HTTP API settings
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// FilterConfig contains named filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// OutputConfig controls command output
type OutputConfig struct {
	Format      string `mapstructure:"format"`
	ShowDetails bool   `mapstructure:"show_details"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
