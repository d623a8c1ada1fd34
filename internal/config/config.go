package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Picsum  PicsumConfig  `mapstructure:"picsum"`
	Grid    GridConfig    `mapstructure:"grid"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

// Addr returns the listen address of the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// PicsumConfig holds photo listing API configuration
type PicsumConfig struct {
	BaseURL              string   `mapstructure:"base_url"`
	ImageBaseURL         string   `mapstructure:"image_base_url"`
	Timeout              int      `mapstructure:"timeout"` // Seconds, 0 disables
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	UserAgent            string   `mapstructure:"user_agent"`
	Proxies              []string `mapstructure:"proxies"`
}

// GridConfig holds photo grid layout and paging behaviour
type GridConfig struct {
	Columns       int     `mapstructure:"columns"`
	ScreenWidth   float64 `mapstructure:"screen_width"`
	GuardInFlight bool    `mapstructure:"guard_in_flight"`
}

// LoggingConfig holds logrus settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from YAML file with environment variable overrides
// named after the key path, e.g. PICSUM_BASE_URL or GRID_COLUMNS.
// A missing config.yaml is not an error: defaults and environment apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Picsum: PicsumConfig{
			BaseURL:      "https://picsum.photos/v2",
			ImageBaseURL: "https://picsum.photos",
			UserAgent:    "picsum-grid/1.0",
		},
		Grid: GridConfig{
			Columns:       3,
			ScreenWidth:   390,
			GuardInFlight: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if err := validateURL("picsum base URL", c.Picsum.BaseURL); err != nil {
		return err
	}
	if err := validateURL("picsum image base URL", c.Picsum.ImageBaseURL); err != nil {
		return err
	}
	if c.Picsum.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	if c.Picsum.MaxRequestsPerSecond < 0 {
		return fmt.Errorf("max requests per second cannot be negative")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server port must be positive")
	}
	if c.Grid.ScreenWidth < 0 {
		return fmt.Errorf("screen width cannot be negative")
	}
	return nil
}

func validateURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host", name)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.host", d.Server.Host)

	v.SetDefault("picsum.base_url", d.Picsum.BaseURL)
	v.SetDefault("picsum.image_base_url", d.Picsum.ImageBaseURL)
	v.SetDefault("picsum.timeout", d.Picsum.Timeout)
	v.SetDefault("picsum.max_requests_per_second", d.Picsum.MaxRequestsPerSecond)
	v.SetDefault("picsum.user_agent", d.Picsum.UserAgent)
	v.SetDefault("picsum.proxies", []string{})

	v.SetDefault("grid.columns", d.Grid.Columns)
	v.SetDefault("grid.screen_width", d.Grid.ScreenWidth)
	v.SetDefault("grid.guard_in_flight", d.Grid.GuardInFlight)

	v.SetDefault("logging.level", d.Logging.Level)
}
