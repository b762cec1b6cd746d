package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Images  ImagesConfig  `mapstructure:"images"`
	UI      UIConfig      `mapstructure:"ui"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds remote catalog API configuration
type APIConfig struct {
	URL       string        `mapstructure:"url"`        // Base URL including the version segment
	Token     string        `mapstructure:"token"`      // Bearer token
	Timeout   time.Duration `mapstructure:"timeout"`    // Per-request timeout
	RateLimit float64       `mapstructure:"rate_limit"` // Requests per second
	Burst     int           `mapstructure:"burst"`
}

// ImagesConfig holds image URL configuration
type ImagesConfig struct {
	Size string `mapstructure:"size"` // e.g. "w780"
}

// UIConfig holds UI configuration
type UIConfig struct {
	Debounce          time.Duration `mapstructure:"debounce"`           // Keyword search quiet window
	SentinelThreshold float64       `mapstructure:"sentinel_threshold"` // Visible fraction that counts as intersecting
	SentinelMargin    int           `mapstructure:"sentinel_margin"`    // Rows added around the viewport
}

// SessionConfig holds the client-side session
type SessionConfig struct {
	User string `mapstructure:"user"` // Empty for anonymous
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

var envKeyReplacer = strings.NewReplacer(".", "_")

const (
	DefaultAPIURL    = "https://api.themoviedb.org/3"
	DefaultImageSize = "w780"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			URL:       DefaultAPIURL,
			Timeout:   30 * time.Second,
			RateLimit: 4, // ~40 requests per 10 seconds
			Burst:     8,
		},
		Images: ImagesConfig{
			Size: DefaultImageSize,
		},
		UI: UIConfig{
			Debounce:          time.Second,
			SentinelThreshold: 1.0,
			SentinelMargin:    0,
		},
		Logging: LoggingConfig{
			File:       defaultLogPath(),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "flick", "flick.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "flick", "flick.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "flick")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "flick")
	}
}

// LoadConfig loads configuration from .env, the config file and the environment.
// configFile overrides the search path when non-empty.
func LoadConfig(configFile string) (*Config, error) {
	// .env is optional; values already in the environment win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.GetViper()
	setDefaults(v, DefaultConfig())

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides (FLICK_API_TOKEN, FLICK_LOGGING_LEVEL, ...)
	v.SetEnvPrefix("FLICK")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it during Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.url", cfg.API.URL)
	v.SetDefault("api.token", cfg.API.Token)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("api.rate_limit", cfg.API.RateLimit)
	v.SetDefault("api.burst", cfg.API.Burst)

	v.SetDefault("images.size", cfg.Images.Size)

	v.SetDefault("ui.debounce", cfg.UI.Debounce)
	v.SetDefault("ui.sentinel_threshold", cfg.UI.SentinelThreshold)
	v.SetDefault("ui.sentinel_margin", cfg.UI.SentinelMargin)

	v.SetDefault("session.user", cfg.Session.User)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", cfg.Logging.MaxAgeDays)
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("api.url", cfg.API.URL)
	viper.Set("api.token", cfg.API.Token)
	viper.Set("api.timeout", cfg.API.Timeout.String())
	viper.Set("api.rate_limit", cfg.API.RateLimit)
	viper.Set("api.burst", cfg.API.Burst)

	viper.Set("images.size", cfg.Images.Size)

	viper.Set("ui.debounce", cfg.UI.Debounce.String())
	viper.Set("ui.sentinel_threshold", cfg.UI.SentinelThreshold)
	viper.Set("ui.sentinel_margin", cfg.UI.SentinelMargin)

	viper.Set("session.user", cfg.Session.User)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)
	viper.Set("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	viper.Set("logging.max_backups", cfg.Logging.MaxBackups)
	viper.Set("logging.max_age_days", cfg.Logging.MaxAgeDays)

	return writeConfig()
}

// SaveSession updates just the session user in the configuration
func SaveSession(user string) error {
	viper.Set("session.user", user)
	return writeConfig()
}

// ClearSession logs the user out while preserving every other setting
func ClearSession() error {
	return SaveSession("")
}

func writeConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = filepath.Join(defaultConfigPath(), "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the API URL and token are set
func (c *Config) IsConfigured() bool {
	return c.API.URL != "" && c.API.Token != ""
}
