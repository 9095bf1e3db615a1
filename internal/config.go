package internal

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	StorageDriverMongo    = "mongo"
	StorageDriverPostgres = "postgres"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"http_server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	AllowedOrigins string        `mapstructure:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

// StorageConfig selects the repository backend. The document store is
// the primary backend; the relational one exists for deployments that
// already run Postgres.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type DatabaseConfig struct {
	Source          string        `mapstructure:"source"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return errors.New("http_server.port must be positive")
	}

	switch c.Storage.Driver {
	case StorageDriverMongo:
		if c.Mongo.URI == "" {
			return errors.New("mongo.uri is required when storage.driver is mongo")
		}
		if c.Mongo.Database == "" {
			return errors.New("mongo.database is required when storage.driver is mongo")
		}
	case StorageDriverPostgres:
		if c.Database.Source == "" {
			return errors.New("database.source is required when storage.driver is postgres")
		}
	default:
		return fmt.Errorf("unsupported storage.driver %q", c.Storage.Driver)
	}

	return nil
}

// LoadConfigFromEnv builds a Config purely from environment variables,
// used for container deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		App: AppConfig{
			Name: envOr("APP_NAME", "expense-tracker"),
			Env:  envOr("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:           envIntOr("HTTP_PORT", 8000),
			AllowedOrigins: envOr("HTTP_ALLOWED_ORIGINS", "*"),
			ReadTimeout:    envDurationOr("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   envDurationOr("HTTP_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:    envDurationOr("HTTP_IDLE_TIMEOUT", 60*time.Second),
		},
		Storage: StorageConfig{
			Driver: envOr("STORAGE_DRIVER", StorageDriverMongo),
		},
		Mongo: MongoConfig{
			URI:            envOr("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       envOr("MONGODB_DATABASE", "expense_tracker"),
			ConnectTimeout: envDurationOr("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Source:          os.Getenv("DATABASE_SOURCE"),
			MaxOpenConns:    envIntOr("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    envIntOr("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDurationOr("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: envDurationOr("DATABASE_CONN_MAX_IDLE_TIME", 5*time.Minute),
		},
		Logging: LoggingConfig{
			Level:  envOr("LOG_LEVEL", "info"),
			Format: envOr("LOG_FORMAT", "json"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
