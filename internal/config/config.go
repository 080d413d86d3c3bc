package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers understood by the bootstrap layer.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Storage struct {
		Driver      string `yaml:"driver" env:"STORAGE_DRIVER"`
		FilePath    string `yaml:"file_path" env:"STORAGE_FILE_PATH"`
		SQLitePath  string `yaml:"sqlite_path" env:"STORAGE_SQLITE_PATH"`
		RedisURL    string `yaml:"redis_url" env:"REDIS_URL"`
		RedisPrefix string `yaml:"redis_prefix" env:"REDIS_PREFIX"`

		Breaker struct {
			Enabled          bool   `yaml:"enabled" env:"STORAGE_BREAKER_ENABLED"`
			FailureThreshold int    `yaml:"failure_threshold" env:"STORAGE_BREAKER_FAILURE_THRESHOLD"`
			Timeout          string `yaml:"timeout" env:"STORAGE_BREAKER_TIMEOUT"`
		} `yaml:"breaker"`
	} `yaml:"storage"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file, a .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	// The file driver mirrors browser local storage: one document per key on local disk.
	config.Storage.Driver = DriverFile
	config.Storage.FilePath = "data/registrar.json"
	config.Storage.SQLitePath = "data/registrar.db"
	config.Storage.RedisURL = "redis://localhost:6379/0"
	config.Storage.RedisPrefix = "registrar"
	config.Storage.Breaker.Enabled = true
	config.Storage.Breaker.FailureThreshold = 5
	config.Storage.Breaker.Timeout = "30s"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "registrar"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 1
	config.Database.MaxOpenConns = 5
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	config.Storage.Driver = strings.ToLower(strings.TrimSpace(config.Storage.Driver))

	switch config.Storage.Driver {
	case DriverMemory:
	case DriverFile:
		if config.Storage.FilePath == "" {
			return fmt.Errorf("storage file path is required for the %s driver", DriverFile)
		}
	case DriverSQLite:
		if config.Storage.SQLitePath == "" {
			return fmt.Errorf("storage sqlite path is required for the %s driver", DriverSQLite)
		}
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required for the %s driver", DriverPostgres)
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database connection max lifetime: %w", err)
		}
	case DriverRedis:
		if config.Storage.RedisURL == "" {
			return fmt.Errorf("redis url is required for the %s driver", DriverRedis)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	if config.Storage.Breaker.FailureThreshold < 1 {
		return fmt.Errorf("storage breaker failure threshold must be positive")
	}
	if _, err := time.ParseDuration(config.Storage.Breaker.Timeout); err != nil {
		return fmt.Errorf("invalid storage breaker timeout: %w", err)
	}

	return nil
}

// IsRemoteStorage reports whether the configured driver talks to a network service.
func (c *Config) IsRemoteStorage() bool {
	return c.Storage.Driver == DriverPostgres || c.Storage.Driver == DriverRedis
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
