package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pet-registry/internal/domain/reconcile"
	"pet-registry/internal/platform/logger"

	"gopkg.in/yaml.v3"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type HTTP struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type Storage struct {
	// memory | postgres | sqlite
	Driver      string `yaml:"driver"`
	DSN         string `yaml:"dsn"`
	SQLitePath  string `yaml:"sqlite_path"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

type Pagination struct {
	// 0 desactiva la paginación (GET /pets devuelve lista plana).
	PageSize int `yaml:"page_size"`
}

type Reconcile struct {
	UpdateMatch string `yaml:"update_match"`
}

type Config struct {
	HTTP       HTTP       `yaml:"http"`
	Storage    Storage    `yaml:"storage"`
	Log        Log        `yaml:"log"`
	Pagination Pagination `yaml:"pagination"`
	Reconcile  Reconcile  `yaml:"reconcile"`
}

func Default() Config {
	return Config{
		HTTP: HTTP{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Storage: Storage{
			Driver:      DriverMemory,
			SQLitePath:  "pet-registry.db",
			AutoMigrate: true,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
			App:    "pet-registry",
		},
		Pagination: Pagination{PageSize: 10},
		Reconcile:  Reconcile{UpdateMatch: string(reconcile.MatchContains)},
	}
}

// Load arma la config: defaults, luego el YAML (si path != ""), luego env.
func Load(path string) (Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.HTTP.Addr = ":" + v
	}
	// DB_DSN sin driver explícito implica postgres.
	if v := os.Getenv("DB_DSN"); v != "" {
		c.Storage.DSN = v
		if os.Getenv("STORAGE_DRIVER") == "" {
			c.Storage.Driver = DriverPostgres
		}
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Storage.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("APP_NAME"); v != "" {
		c.Log.App = v
	}
	if v := os.Getenv("PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("PAGE_SIZE: %w", err)
		}
		c.Pagination.PageSize = n
	}
	if v := os.Getenv("RECONCILE_UPDATE_MATCH"); v != "" {
		c.Reconcile.UpdateMatch = v
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error

	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			errs = append(errs, errors.New("storage.dsn is required for postgres"))
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			errs = append(errs, errors.New("storage.sqlite_path is required for sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q not supported", c.Storage.Driver))
	}

	if strings.TrimSpace(c.HTTP.Addr) == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}
	if c.Pagination.PageSize < 0 {
		errs = append(errs, errors.New("pagination.page_size must be >= 0"))
	}
	if _, err := reconcile.ParseMatch(c.Reconcile.UpdateMatch); err != nil {
		errs = append(errs, fmt.Errorf("reconcile.update_match: %w", err))
	}

	return errors.Join(errs...)
}

func (c Config) UpdateMatch() reconcile.Match {
	m, _ := reconcile.ParseMatch(c.Reconcile.UpdateMatch)
	return m
}

func (c Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level:  logger.ParseLevel(c.Log.Level),
		Format: logger.ParseFormat(c.Log.Format),
		App:    c.Log.App,
	}
}
