package sqlstore

import (
	"context"
	"database/sql"

	"pet-registry/internal/domain/reconcile"
	"pet-registry/internal/domain/traits"
)

type TraitsRepo struct {
	t keyedTable
}

func NewTraitsRepo(db *sql.DB, d Dialect) *TraitsRepo {
	return &TraitsRepo{t: keyedTable{db: db, d: d, table: "traits", key: "name"}}
}

func (r *TraitsRepo) FindByName(ctx context.Context, name string, m reconcile.Match) (traits.Trait, bool, error) {
	row, ok, err := r.t.find(ctx, name, m)
	if err != nil || !ok {
		return traits.Trait{}, false, err
	}
	return toTrait(row), true, nil
}

func (r *TraitsRepo) Create(ctx context.Context, t traits.Trait) (traits.Trait, error) {
	row, err := r.t.insert(ctx, keyedRow{ID: t.ID, Key: t.Name, CreatedAt: t.CreatedAt})
	if err != nil {
		return traits.Trait{}, err
	}
	return toTrait(row), nil
}

func (r *TraitsRepo) GetByID(ctx context.Context, id string) (traits.Trait, error) {
	row, ok, err := r.t.get(ctx, id)
	if err != nil {
		return traits.Trait{}, err
	}
	if !ok {
		return traits.Trait{}, traits.ErrNotFound
	}
	return toTrait(row), nil
}

func toTrait(row keyedRow) traits.Trait {
	return traits.Trait{ID: row.ID, Name: row.Key, CreatedAt: row.CreatedAt}
}
