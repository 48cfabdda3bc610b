package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Limits  LimitsConfig  `yaml:"limits"`
	Convert ConvertConfig `yaml:"convert"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds"`
}

// ShutdownTimeout returns the graceful-shutdown bound as a duration.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

type LimitsConfig struct {
	// MaxFileSize is the largest accepted upload in bytes.
	MaxFileSize int64 `yaml:"max_file_size"`
	// MaxDimension caps requested resize targets per axis.
	MaxDimension int `yaml:"max_dimension"`
}

type ConvertConfig struct {
	DefaultQuality int `yaml:"default_quality"`
	// TempDir is where the health check runs its filesystem write probe.
	TempDir string `yaml:"temp_dir"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	// File enables rotating-file output; empty logs to stderr.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                   "",
			Port:                   8080,
			ShutdownTimeoutSeconds: 5,
		},
		Limits: LimitsConfig{
			MaxFileSize:  10 << 20,
			MaxDimension: 4096,
		},
		Convert: ConvertConfig{
			DefaultQuality: 90,
			TempDir:        os.TempDir(),
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

// Load builds the configuration: defaults, then the optional YAML file, then
// environment variable overrides. A .env file in the working directory is
// folded into the environment first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Host = getEnvString("RASTERD_HOST", c.Server.Host)
	c.Server.Port = getEnvInt("RASTERD_PORT", c.Server.Port)
	c.Limits.MaxFileSize = getEnvInt64("RASTERD_MAX_FILE_SIZE", c.Limits.MaxFileSize)
	c.Limits.MaxDimension = getEnvInt("RASTERD_MAX_DIMENSION", c.Limits.MaxDimension)
	c.Convert.DefaultQuality = getEnvInt("RASTERD_DEFAULT_QUALITY", c.Convert.DefaultQuality)
	c.Convert.TempDir = getEnvString("RASTERD_TEMP_DIR", c.Convert.TempDir)
	c.Logging.Level = getEnvString("RASTERD_LOG_LEVEL", c.Logging.Level)
	c.Logging.File = getEnvString("RASTERD_LOG_FILE", c.Logging.File)
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("shutdown_timeout_seconds must not be negative, got %d", c.Server.ShutdownTimeoutSeconds)
	}
	if c.Limits.MaxFileSize <= 0 {
		return fmt.Errorf("max_file_size must be positive, got %d", c.Limits.MaxFileSize)
	}
	if c.Limits.MaxDimension < 1 {
		return fmt.Errorf("max_dimension must be at least 1, got %d", c.Limits.MaxDimension)
	}
	if c.Convert.DefaultQuality < 1 || c.Convert.DefaultQuality > 100 {
		return fmt.Errorf("default_quality must be within [1,100], got %d", c.Convert.DefaultQuality)
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
