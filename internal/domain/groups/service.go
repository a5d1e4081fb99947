package groups

import (
	"context"
	"time"

	"pet-registry/internal/domain/reconcile"

	"github.com/google/uuid"
)

const entity = "group"

type Options struct {
	Recorder    reconcile.Recorder // puede ser nil
	UpdateMatch reconcile.Match    // vacío => contains
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

// Resolve busca por match exacto y crea el grupo con el nombre tal cual si no existe.
func (s *Service) Resolve(ctx context.Context, d Descriptor) (Group, error) {
	return s.resolve(ctx, d, reconcile.CreatePolicy)
}

// ResolveForUpdate es la variante de PATCH: match configurable (contains por
// defecto) y alta en minúsculas.
func (s *Service) ResolveForUpdate(ctx context.Context, d Descriptor) (Group, error) {
	p := reconcile.UpdatePolicy
	p.Match = s.updateMatch
	return s.resolve(ctx, d, p)
}

func (s *Service) GetByID(ctx context.Context, id string) (Group, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) resolve(ctx context.Context, d Descriptor, p reconcile.Policy) (Group, error) {
	g, out, err := reconcile.Resolve(ctx, d.ScientificName, p, s.repo.FindByName, s.create)
	if err != nil {
		return Group{}, err
	}
	s.rec.Reconciled(entity, string(out))
	return g, nil
}

func (s *Service) create(ctx context.Context, name string) (Group, error) {
	return s.repo.Create(ctx, Group{
		ID:             uuid.NewString(),
		ScientificName: name,
		CreatedAt:      s.now(),
	})
}
