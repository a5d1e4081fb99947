package traits

import (
	"context"
	"time"

	"pet-registry/internal/domain/reconcile"

	"github.com/google/uuid"
)

const entity = "trait"

type Options struct {
	Recorder    reconcile.Recorder
	UpdateMatch reconcile.Match
}

type Service struct {
	repo        Repository
	rec         reconcile.Recorder
	updateMatch reconcile.Match
	now         func() time.Time
}

func NewService(repo Repository, opts Options) *Service {
	rec := opts.Recorder
	if rec == nil {
		rec = reconcile.NopRecorder()
	}
	m := opts.UpdateMatch
	if m == "" {
		m = reconcile.UpdatePolicy.Match
	}
	return &Service{
		repo:        repo,
		rec:         rec,
		updateMatch: m,
		now:         time.Now,
	}
}

func (s *Service) Resolve(ctx context.Context, d Descriptor) (Trait, error) {
	return s.resolve(ctx, d, reconcile.CreatePolicy)
}

func (s *Service) ResolveForUpdate(ctx context.Context, d Descriptor) (Trait, error) {
	p := reconcile.UpdatePolicy
	p.Match = s.updateMatch
	return s.resolve(ctx, d, p)
}

// ResolveAll resuelve una lista completa con la misma política, en orden y sin
// repetir referencias.
func (s *Service) ResolveAll(ctx context.Context, ds []Descriptor, forUpdate bool) ([]Trait, error) {
	out := make([]Trait, 0, len(ds))
	seen := map[string]struct{}{}
	for _, d := range ds {
		var (
			t   Trait
			err error
		)
		if forUpdate {
			t, err = s.ResolveForUpdate(ctx, d)
		} else {
			t, err = s.Resolve(ctx, d)
		}
		if err != nil {
			return nil, err
		}
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

func (s *Service) resolve(ctx context.Context, d Descriptor, p reconcile.Policy) (Trait, error) {
	t, out, err := reconcile.Resolve(ctx, d.Name, p, s.repo.FindByName, s.create)
	if err != nil {
		return Trait{}, err
	}
	s.rec.Reconciled(entity, string(out))
	return t, nil
}

func (s *Service) create(ctx context.Context, name string) (Trait, error) {
	return s.repo.Create(ctx, Trait{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: s.now(),
	})
}
