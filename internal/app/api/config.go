package api

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"go.temporal.io/sdk/client"
	"gopkg.in/yaml.v3"

	"github.com/Apurer/go-gin-store-api/internal/platform/database"
)

// Config carries the settings for the API and worker processes.
type Config struct {
	Port        string         `yaml:"port" toml:"port"`
	ServiceName string         `yaml:"service_name" toml:"service_name"`
	Database    DatabaseConfig `yaml:"database" toml:"database"`
	Temporal    TemporalConfig `yaml:"temporal" toml:"temporal"`
}

// DatabaseConfig selects and locates the relational store.
type DatabaseConfig struct {
	Driver      string `yaml:"driver" toml:"driver"`
	PostgresDSN string `yaml:"postgres_dsn" toml:"postgres_dsn"`
	SQLitePath  string `yaml:"sqlite_path" toml:"sqlite_path"`
}

// TemporalConfig points at the Temporal frontend.
type TemporalConfig struct {
	Address   string `yaml:"address" toml:"address"`
	Namespace string `yaml:"namespace" toml:"namespace"`
	Disabled  bool   `yaml:"disabled" toml:"disabled"`
}

// LoadConfig applies defaults, then the optional file named by CONFIG_FILE (YAML, or TOML for *.toml), then environment variables.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        "8080",
		ServiceName: "store-api",
		Database:    DatabaseConfig{SQLitePath: database.DefaultSQLitePath},
		Temporal: TemporalConfig{
			Address:   client.DefaultHostPort,
			Namespace: client.DefaultNamespace,
		},
	}
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	expanded := expandEnvVars(string(data))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(expanded, cfg); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
	}
	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with the value of VAR. $VAR without braces is left untouched.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}

func applyEnv(cfg *Config) {
	cfg.Port = envDefault("PORT", cfg.Port)
	cfg.ServiceName = envDefault("SERVICE_NAME", cfg.ServiceName)
	cfg.Database.Driver = envDefault("DATABASE_DRIVER", cfg.Database.Driver)
	cfg.Database.PostgresDSN = envDefault("POSTGRES_DSN", cfg.Database.PostgresDSN)
	cfg.Database.SQLitePath = envDefault("SQLITE_PATH", cfg.Database.SQLitePath)
	cfg.Temporal.Address = envDefault("TEMPORAL_ADDRESS", cfg.Temporal.Address)
	cfg.Temporal.Namespace = envDefault("TEMPORAL_NAMESPACE", cfg.Temporal.Namespace)
	if raw, ok := os.LookupEnv("TEMPORAL_DISABLED"); ok && strings.TrimSpace(raw) != "" {
		cfg.Temporal.Disabled = isTruthy(raw)
	}
}

// Validate checks basic constraints.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be an integer between 1 and 65535, got %q", c.Port)
	}
	switch driver := c.DatabaseConfig().EffectiveDriver(); driver {
	case database.DriverPostgres:
		if strings.TrimSpace(c.Database.PostgresDSN) == "" {
			return fmt.Errorf("POSTGRES_DSN is required when DATABASE_DRIVER is postgres")
		}
	case database.DriverSQLite:
	default:
		return fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite, got %q", c.Database.Driver)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// DatabaseConfig converts to the platform connection settings.
func (c Config) DatabaseConfig() database.Config {
	return database.Config{
		Driver:     c.Database.Driver,
		DSN:        c.Database.PostgresDSN,
		SQLitePath: c.Database.SQLitePath,
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
