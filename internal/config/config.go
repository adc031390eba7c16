package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const appName = "teamboard"

// Config holds the application configuration
type Config struct {
	APIURL            string        `yaml:"api_url"`
	TokenPath         string        `yaml:"token_path"`
	LogLevel          string        `yaml:"log_level"`
	LogPath           string        `yaml:"log_path"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	dir := configDir()
	return &Config{
		APIURL:            "http://localhost:8080",
		TokenPath:         filepath.Join(dir, "token"),
		LogLevel:          "info",
		LogPath:           filepath.Join(dir, appName+".log"),
		RequestTimeout:    10 * time.Second,
		RequestsPerSecond: 5,
	}
}

// configDir returns the directory holding the config, token and log files
func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(dir, appName)
}

// configPath returns the path to the config file
func configPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// Load reads the configuration from the config file, then applies
// TEAMBOARD_* environment overrides (a .env file in the working
// directory is honoured). Falls back to defaults if the file doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(configPath())
}

// LoadFrom is Load with an explicit config file path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.TokenPath = expandPath(cfg.TokenPath)
	cfg.LogPath = expandPath(cfg.LogPath)

	// Ensure reasonable defaults
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with environment variables
func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("TEAMBOARD_API_URL")); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv("TEAMBOARD_TOKEN_PATH")); v != "" {
		c.TokenPath = v
	}
	if v := strings.TrimSpace(os.Getenv("TEAMBOARD_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("TEAMBOARD_LOG_PATH")); v != "" {
		c.LogPath = v
	}
	if v := strings.TrimSpace(os.Getenv("TEAMBOARD_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TEAMBOARD_REQUEST_TIMEOUT must be a duration: %w", err)
		}
		c.RequestTimeout = d
	}
	if v := strings.TrimSpace(os.Getenv("TEAMBOARD_RATE_LIMIT")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("TEAMBOARD_RATE_LIMIT must be a number: %w", err)
		}
		c.RequestsPerSecond = f
	}
	return nil
}

// Validate checks the values that cannot be defaulted
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url must be an http(s) URL, got %q", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api_url has no host: %q", c.APIURL)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// ConfigPath returns the path where the config file should be located
func ConfigPath() string {
	return configPath()
}
