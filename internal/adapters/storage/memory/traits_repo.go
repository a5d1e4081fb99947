package memory

import (
	"context"
	"strings"
	"sync"

	"pet-registry/internal/domain/reconcile"
	"pet-registry/internal/domain/traits"
)

type traitRepo struct {
	mu    sync.RWMutex
	byID  map[string]traits.Trait
	order []string
}

func NewTraitRepo() traits.Repository {
	return &traitRepo{
		byID: make(map[string]traits.Trait),
	}
}

func (r *traitRepo) FindByName(ctx context.Context, name string, m reconcile.Match) (traits.Trait, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.find(name, m)
	return t, ok, nil
}

func (r *traitRepo) Create(ctx context.Context, t traits.Trait) (traits.Trait, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return traits.Trait{}, errIDRequired
	}
	if existing, ok := r.find(t.Name, reconcile.MatchExact); ok {
		return existing, nil
	}
	r.byID[t.ID] = t
	r.order = append(r.order, t.ID)
	return t, nil
}

func (r *traitRepo) GetByID(ctx context.Context, id string) (traits.Trait, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return traits.Trait{}, traits.ErrNotFound
	}
	return t, nil
}

func (r *traitRepo) find(name string, m reconcile.Match) (traits.Trait, bool) {
	for _, id := range r.order {
		t := r.byID[id]
		if m.Matches(t.Name, name) {
			return t, true
		}
	}
	return traits.Trait{}, false
}
