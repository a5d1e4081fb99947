package sqlstore

import (
	"context"
	"database/sql"

	"pet-registry/internal/domain/groups"
	"pet-registry/internal/domain/reconcile"
)

type GroupsRepo struct {
	t keyedTable
}

func NewGroupsRepo(db *sql.DB, d Dialect) *GroupsRepo {
	return &GroupsRepo{t: keyedTable{db: db, d: d, table: "pet_groups", key: "scientific_name"}}
}

func (r *GroupsRepo) FindByName(ctx context.Context, name string, m reconcile.Match) (groups.Group, bool, error) {
	row, ok, err := r.t.find(ctx, name, m)
	if err != nil || !ok {
		return groups.Group{}, false, err
	}
	return toGroup(row), true, nil
}

func (r *GroupsRepo) Create(ctx context.Context, g groups.Group) (groups.Group, error) {
	row, err := r.t.insert(ctx, keyedRow{ID: g.ID, Key: g.ScientificName, CreatedAt: g.CreatedAt})
	if err != nil {
		return groups.Group{}, err
	}
	return toGroup(row), nil
}

func (r *GroupsRepo) GetByID(ctx context.Context, id string) (groups.Group, error) {
	row, ok, err := r.t.get(ctx, id)
	if err != nil {
		return groups.Group{}, err
	}
	if !ok {
		return groups.Group{}, groups.ErrNotFound
	}
	return toGroup(row), nil
}

func toGroup(row keyedRow) groups.Group {
	return groups.Group{ID: row.ID, ScientificName: row.Key, CreatedAt: row.CreatedAt}
}
