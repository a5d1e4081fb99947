package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const MemoryPath = ":memory:"

// Open abre (o crea) la base sqlite en path. ":memory:" usa una base en memoria
// con una sola conexión, para que todas las queries vean los mismos datos.
func Open(path string) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "pet-registry.db"
	}

	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS pet_groups (
		id TEXT PRIMARY KEY,
		scientific_name TEXT NOT NULL,
		scientific_name_key TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS pet_groups_scientific_name_key
		ON pet_groups (scientific_name_key)`,
	`CREATE TABLE IF NOT EXISTS traits (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		name_key TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS traits_name_key
		ON traits (name_key)`,
	`CREATE TABLE IF NOT EXISTS pets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		age INTEGER NOT NULL,
		weight NUMERIC NOT NULL,
		sex TEXT NOT NULL DEFAULT 'Not Informed',
		group_id TEXT NOT NULL REFERENCES pet_groups(id),
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS pets_created_at_idx ON pets (created_at, id)`,
	`CREATE TABLE IF NOT EXISTS pet_traits (
		pet_id TEXT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		trait_id TEXT NOT NULL REFERENCES traits(id),
		seq INTEGER NOT NULL,
		PRIMARY KEY (pet_id, trait_id)
	)`,
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite migrate: %w", err)
		}
	}
	return nil
}
