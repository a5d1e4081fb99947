package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema es idempotente. Las columnas *_key guardan la natural key plegada
// (reconcile.Fold) y su índice único la hace cumplir sin importar mayúsculas.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS pet_groups (
		id UUID PRIMARY KEY,
		scientific_name TEXT NOT NULL,
		scientific_name_key TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS pet_groups_scientific_name_key
		ON pet_groups (scientific_name_key)`,
	`CREATE TABLE IF NOT EXISTS traits (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		name_key TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS traits_name_key
		ON traits (name_key)`,
	`CREATE TABLE IF NOT EXISTS pets (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		age INTEGER NOT NULL,
		weight NUMERIC(4,1) NOT NULL,
		sex TEXT NOT NULL DEFAULT 'Not Informed',
		group_id UUID NOT NULL REFERENCES pet_groups(id),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS pets_created_at_idx ON pets (created_at, id)`,
	`CREATE TABLE IF NOT EXISTS pet_traits (
		pet_id UUID NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		trait_id UUID NOT NULL REFERENCES traits(id),
		seq INTEGER NOT NULL,
		PRIMARY KEY (pet_id, trait_id)
	)`,
}

// Migrate crea tablas e índices si no existen.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("postgres migrate: %w", err)
		}
	}
	return nil
}
