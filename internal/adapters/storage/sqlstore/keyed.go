package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pet-registry/internal/domain/reconcile"
)

// keyedTable es una tabla (id, <key>, <key>_key, created_at). <key>_key guarda
// reconcile.Fold(<key>) y tiene el índice único. La comparten groups y traits.
type keyedTable struct {
	db    *sql.DB
	d     Dialect
	table string
	key   string
}

func (t keyedTable) folded() string { return t.key + "_key" }

type keyedRow struct {
	ID        string
	Key       string
	CreatedAt time.Time
}

func (t keyedTable) find(ctx context.Context, name string, m reconcile.Match) (keyedRow, bool, error) {
	q := fmt.Sprintf(`
		SELECT id, %s, created_at
		FROM %s
		WHERE %s
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`, t.key, t.table, t.d.matchClause(t.folded(), m))

	var row keyedRow
	err := t.db.QueryRowContext(ctx, t.d.Rebind(q), reconcile.Fold(name)).Scan(&row.ID, &row.Key, &row.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return keyedRow{}, false, nil
	}
	if err != nil {
		return keyedRow{}, false, fmt.Errorf("%s: find: %w", t.table, err)
	}
	return row, true, nil
}

// insert es un upsert: si otra request ya insertó la misma key, gana esa fila
// y es la que se devuelve.
func (t keyedTable) insert(ctx context.Context, row keyedRow) (keyedRow, error) {
	q := fmt.Sprintf(`
		INSERT INTO %s (id, %s, %s, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, t.table, t.key, t.folded())

	args := []any{row.ID, row.Key, reconcile.Fold(row.Key), row.CreatedAt.UTC()}
	if _, err := t.db.ExecContext(ctx, t.d.Rebind(q), args...); err != nil {
		return keyedRow{}, fmt.Errorf("%s: insert: %w", t.table, err)
	}

	stored, ok, err := t.find(ctx, row.Key, reconcile.MatchExact)
	if err != nil {
		return keyedRow{}, err
	}
	if !ok {
		return keyedRow{}, fmt.Errorf("%s: row %q missing after insert", t.table, row.Key)
	}
	return stored, nil
}

func (t keyedTable) get(ctx context.Context, id string) (keyedRow, bool, error) {
	q := fmt.Sprintf(`SELECT id, %s, created_at FROM %s WHERE id = ?`, t.key, t.table)

	var row keyedRow
	err := t.db.QueryRowContext(ctx, t.d.Rebind(q), id).Scan(&row.ID, &row.Key, &row.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return keyedRow{}, false, nil
	}
	if err != nil {
		return keyedRow{}, false, fmt.Errorf("%s: get: %w", t.table, err)
	}
	return row, true, nil
}
