package main

import (
	"context"
	"database/sql"
	"fmt"

	"pet-registry/internal/adapters/storage/postgres"
	"pet-registry/internal/adapters/storage/sqlite"
	"pet-registry/internal/adapters/storage/sqlstore"
	"pet-registry/internal/platform/config"
)

// store es la conexión elegida por config. DB nil => in-memory.
type store struct {
	DB      *sql.DB
	Dialect sqlstore.Dialect
}

func (s store) Close() {
	if s.DB != nil {
		_ = s.DB.Close()
	}
}

func openStore(ctx context.Context, cfg config.Storage, migrate bool) (store, error) {
	var (
		st       store
		err      error
		migrator func(context.Context, *sql.DB) error
	)

	switch cfg.Driver {
	case config.DriverMemory:
		return store{}, nil
	case config.DriverPostgres:
		st.Dialect = sqlstore.Postgres
		st.DB, err = postgres.Open(cfg.DSN)
		migrator = postgres.Migrate
	case config.DriverSQLite:
		st.Dialect = sqlstore.SQLite
		st.DB, err = sqlite.Open(cfg.SQLitePath)
		migrator = sqlite.Migrate
	default:
		return store{}, fmt.Errorf("storage driver %q not supported", cfg.Driver)
	}
	if err != nil {
		return store{}, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if migrate {
		if err := migrator(ctx, st.DB); err != nil {
			st.Close()
			return store{}, fmt.Errorf("migrate %s: %w", cfg.Driver, err)
		}
	}
	return st, nil
}
