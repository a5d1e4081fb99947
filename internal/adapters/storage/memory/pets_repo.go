package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"pet-registry/internal/domain/groups"
	"pet-registry/internal/domain/pets"
	"pet-registry/internal/domain/traits"
)

var (
	errIDRequired = errors.New("id required")
)

// petRow es lo que se guarda: referencias, no copias de group/traits.
type petRow struct {
	ID        string
	Name      string
	Age       int
	Weight    pets.Weight
	Sex       pets.Sex
	GroupID   string
	TraitIDs  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type petRepo struct {
	mu     sync.RWMutex
	byID   map[string]petRow
	order  []string
	groups groups.Repository
	traits traits.Repository
}

// NewPetRepo necesita los repos de group y trait para hidratar las lecturas.
func NewPetRepo(groupRepo groups.Repository, traitRepo traits.Repository) pets.Repository {
	return &petRepo{
		byID:   make(map[string]petRow),
		groups: groupRepo,
		traits: traitRepo,
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errIDRequired
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = toRow(p)
	r.order = append(r.order, p.ID)
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.byID[p.ID]
	if !exists {
		return pets.ErrNotFound
	}
	row := toRow(p)
	row.CreatedAt = current.CreatedAt
	r.byID[p.ID] = row
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	row, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return r.hydrate(ctx, row)
}

func (r *petRepo) List(ctx context.Context, filter pets.ListFilter) ([]pets.Pet, error) {
	r.mu.RLock()
	ids := slices.Clone(r.order)
	rows := make([]petRow, 0, len(ids))
	for _, id := range window(ids, filter) {
		rows = append(rows, r.byID[id])
	}
	r.mu.RUnlock()

	out := make([]pets.Pet, 0, len(rows))
	for _, row := range rows {
		p, err := r.hydrate(ctx, row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *petRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return pets.ErrNotFound
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *petRepo) hydrate(ctx context.Context, row petRow) (pets.Pet, error) {
	g, err := r.groups.GetByID(ctx, row.GroupID)
	if err != nil {
		return pets.Pet{}, fmt.Errorf("pet %s: load group: %w", row.ID, err)
	}

	ts := make([]traits.Trait, 0, len(row.TraitIDs))
	for _, tid := range row.TraitIDs {
		t, err := r.traits.GetByID(ctx, tid)
		if err != nil {
			return pets.Pet{}, fmt.Errorf("pet %s: load trait: %w", row.ID, err)
		}
		ts = append(ts, t)
	}

	return pets.Pet{
		ID:        row.ID,
		Name:      row.Name,
		Age:       row.Age,
		Weight:    row.Weight,
		Sex:       row.Sex,
		Group:     g,
		Traits:    ts,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func toRow(p pets.Pet) petRow {
	return petRow{
		ID:        p.ID,
		Name:      p.Name,
		Age:       p.Age,
		Weight:    p.Weight,
		Sex:       p.Sex,
		GroupID:   p.Group.ID,
		TraitIDs:  p.TraitIDs(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func window(ids []string, f pets.ListFilter) []string {
	if f.Offset > 0 {
		if f.Offset >= len(ids) {
			return nil
		}
		ids = ids[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(ids) {
		ids = ids[:f.Limit]
	}
	return ids
}
