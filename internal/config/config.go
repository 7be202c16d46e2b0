package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Form   FormConfig   `yaml:"form"`
	Client ClientConfig `yaml:"client"`
	App    AppConfig    `yaml:"app"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// FormConfig holds settings of the validation endpoint
type FormConfig struct {
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// ClientConfig holds settings of the terminal form client
type ClientConfig struct {
	ServerURL string        `yaml:"server_url"`
	Timeout   time.Duration `yaml:"timeout"`
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Environment   string `yaml:"environment"`
	LogLevel      string `yaml:"log_level"`
	EnableMetrics bool   `yaml:"enable_metrics"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Form: FormConfig{
			MaxBodyBytes:   1 << 20,
			RequestTimeout: 5 * time.Second,
		},
		Client: ClientConfig{
			ServerURL: "http://localhost:8080",
			Timeout:   10 * time.Second,
		},
		App: AppConfig{
			Environment:   "development",
			LogLevel:      "info",
			EnableMetrics: true,
		},
	}
}

// Load builds the configuration in three layers: defaults, then the YAML
// file named by CONFIG_FILE (if any), then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Server.Port = getEnv("SERVER_PORT", cfg.Server.Port)
	cfg.Server.ReadTimeout = parseDuration("SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = parseDuration("SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.IdleTimeout = parseDuration("SERVER_IDLE_TIMEOUT", cfg.Server.IdleTimeout)
	cfg.Server.ShutdownTimeout = parseDuration("SERVER_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.Form.MaxBodyBytes = parseInt64("FORM_MAX_BODY_BYTES", cfg.Form.MaxBodyBytes)
	cfg.Form.RequestTimeout = parseDuration("FORM_REQUEST_TIMEOUT", cfg.Form.RequestTimeout)

	cfg.Client.ServerURL = getEnv("FORM_SERVER_URL", cfg.Client.ServerURL)
	cfg.Client.Timeout = parseDuration("FORM_CLIENT_TIMEOUT", cfg.Client.Timeout)

	cfg.App.Environment = getEnv("APP_ENV", cfg.App.Environment)
	cfg.App.LogLevel = getEnv("LOG_LEVEL", cfg.App.LogLevel)
	cfg.App.EnableMetrics = parseBool("ENABLE_METRICS", cfg.App.EnableMetrics)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("config: server port must not be empty")
	}
	if c.Form.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: form max body bytes must be positive, got %d", c.Form.MaxBodyBytes)
	}
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("config: client timeout must be positive, got %s", c.Client.Timeout)
	}
	return nil
}

// Addr returns the listen address of the HTTP server
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// Helper functions to parse environment variables with fallbacks.
// Unparseable values are ignored and the fallback is kept.

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return fallback
}

func parseBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}
