// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	dbPath := cfg.Storage.DatabasePath
//	profile := cfg.Reconciliation.Profile()
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fiscalsync/conciliador-backend/internal/domain/reconcile"
)

// Config represents the entire application configuration
type Config struct {
	Server         ServerConfig         `yaml:"server"`
	Storage        StorageConfig        `yaml:"storage"`
	Reconciliation ReconciliationConfig `yaml:"reconciliation"`
	Observability  ObservabilityConfig  `yaml:"observability"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StorageConfig holds database configuration
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// ReconciliationConfig holds the default matching criteria. Zero-valued
// fields fall back to the built-in profile defaults.
type ReconciliationConfig struct {
	ValueTolerancePct float64  `yaml:"value_tolerance_pct"`
	ValueToleranceAbs float64  `yaml:"value_tolerance_abs"`
	DateWindowDays    int      `yaml:"date_window_days"`
	MinimumScore      float64  `yaml:"minimum_score"`
	StopWords         []string `yaml:"stop_words"`
}

// Profile converts the config section into a reconcile.Profile, filling
// unset fields from the package defaults.
func (r ReconciliationConfig) Profile() reconcile.Profile {
	p := reconcile.Profile{
		ValueTolerancePct: r.ValueTolerancePct,
		ValueToleranceAbs: r.ValueToleranceAbs,
		DateWindowDays:    r.DateWindowDays,
		MinimumScore:      r.MinimumScore,
		StopWords:         r.StopWords,
	}
	return p.Merge(reconcile.DefaultProfile())
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${CONCILIADOR_DB_PATH})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvInt("CONCILIADOR_PORT", 8080),
		},
		Storage: StorageConfig{
			DatabasePath: getEnv("CONCILIADOR_DB_PATH", "conciliador.db"),
		},
		Reconciliation: ReconciliationConfig{
			ValueTolerancePct: getEnvFloat("CONCILIADOR_VALUE_TOLERANCE_PCT", 0),
			ValueToleranceAbs: getEnvFloat("CONCILIADOR_VALUE_TOLERANCE_ABS", 0),
			DateWindowDays:    getEnvInt("CONCILIADOR_DATE_WINDOW_DAYS", 0),
			MinimumScore:      getEnvFloat("CONCILIADOR_MINIMUM_SCORE", 0),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from specified path, falls back to environment variables
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = "conciliador.db"
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}

// getEnvFloat retrieves a float environment variable with a fallback default
func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		var result float64
		if _, err := fmt.Sscanf(val, "%g", &result); err == nil {
			return result
		}
	}
	return fallback
}
