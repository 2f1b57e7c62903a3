package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"inventory-api"`
	Environment string `env:"ENVIRONMENT" envDefault:"local"`
	Port        string `env:"PORT" envDefault:"5000"`

	Log   LogConfig
	Store StoreConfig
	Lock  LockConfig
	HTTP  HTTPConfig
	Paths PluginPaths
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type StoreConfig struct {
	Driver          string        `env:"STORE_DRIVER" envDefault:"sqlite"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"inventory.db"`
	PostgresDSN     string        `env:"POSTGRES_DSN"`
	MySQLDSN        string        `env:"MYSQL_DSN"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
}

// LockConfig enables the Redis per-name lock when RedisAddr is set.
type LockConfig struct {
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL           time.Duration `env:"LOCK_TTL" envDefault:"5s"`
	Wait          time.Duration `env:"LOCK_WAIT" envDefault:"2s"`
}

type HTTPConfig struct {
	ResponseDelay   time.Duration `env:"RESPONSE_DELAY" envDefault:"0s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// PluginPaths are the answers of GET /file-path.
type PluginPaths struct {
	ProjectFolder string `env:"PROJECT_FOLDER_PATH" envDefault:"/path/to/project/folder"`
	DCCFile       string `env:"DCC_FILE_PATH" envDefault:"/path/to/dcc/file"`
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	cfg.Store.PostgresDSN = strings.TrimSpace(cfg.Store.PostgresDSN)
	cfg.Store.MySQLDSN = strings.TrimSpace(cfg.Store.MySQLDSN)
	cfg.Lock.RedisAddr = strings.TrimSpace(cfg.Lock.RedisAddr)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(c.Store.SQLitePath) == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite store"))
		}
	case DriverPostgres:
		if c.Store.PostgresDSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN is required for the postgres store"))
		}
	case DriverMySQL:
		if c.Store.MySQLDSN == "" {
			errs = append(errs, errors.New("MYSQL_DSN is required for the mysql store"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q is not one of memory, sqlite, postgres, mysql", c.Store.Driver))
	}
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	for name, d := range map[string]time.Duration{
		"DB_CONN_MAX_LIFETIME": c.Store.ConnMaxLifetime,
		"LOCK_TTL":             c.Lock.TTL,
		"LOCK_WAIT":            c.Lock.Wait,
		"RESPONSE_DELAY":       c.HTTP.ResponseDelay,
		"SHUTDOWN_TIMEOUT":     c.HTTP.ShutdownTimeout,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", name))
		}
	}
	if c.Store.MaxOpenConns < 0 || c.Store.MaxIdleConns < 0 {
		errs = append(errs, errors.New("DB_MAX_OPEN_CONNS and DB_MAX_IDLE_CONNS must not be negative"))
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
