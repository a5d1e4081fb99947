package memory

import (
	"context"
	"strings"
	"sync"

	"pet-registry/internal/domain/groups"
	"pet-registry/internal/domain/reconcile"
)

type groupRepo struct {
	mu    sync.RWMutex
	byID  map[string]groups.Group
	order []string // orden de alta
}

func NewGroupRepo() groups.Repository {
	return &groupRepo{
		byID: make(map[string]groups.Group),
	}
}

func (r *groupRepo) FindByName(ctx context.Context, name string, m reconcile.Match) (groups.Group, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.find(name, m)
	return g, ok, nil
}

// Create es atómico: buscar y guardar bajo el mismo lock evita duplicados
// entre requests concurrentes.
func (r *groupRepo) Create(ctx context.Context, g groups.Group) (groups.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(g.ID) == "" {
		return groups.Group{}, errIDRequired
	}
	if existing, ok := r.find(g.ScientificName, reconcile.MatchExact); ok {
		return existing, nil
	}
	r.byID[g.ID] = g
	r.order = append(r.order, g.ID)
	return g, nil
}

func (r *groupRepo) GetByID(ctx context.Context, id string) (groups.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byID[id]
	if !ok {
		return groups.Group{}, groups.ErrNotFound
	}
	return g, nil
}

func (r *groupRepo) find(name string, m reconcile.Match) (groups.Group, bool) {
	for _, id := range r.order {
		g := r.byID[id]
		if m.Matches(g.ScientificName, name) {
			return g, true
		}
	}
	return groups.Group{}, false
}
