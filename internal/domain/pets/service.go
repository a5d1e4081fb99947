package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-registry/internal/domain/groups"
	"pet-registry/internal/domain/traits"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// GroupResolver y TraitResolver son el get-or-create de las relaciones.
type GroupResolver interface {
	Resolve(ctx context.Context, d groups.Descriptor) (groups.Group, error)
	ResolveForUpdate(ctx context.Context, d groups.Descriptor) (groups.Group, error)
}

type TraitResolver interface {
	ResolveAll(ctx context.Context, ds []traits.Descriptor, forUpdate bool) ([]traits.Trait, error)
}

type Service struct {
	repo   Repository
	groups GroupResolver
	traits TraitResolver
	now    func() time.Time
}

func NewService(repo Repository, groups GroupResolver, traits TraitResolver) *Service {
	return &Service{
		repo:   repo,
		groups: groups,
		traits: traits,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name   string
	Age    int
	Weight Weight
	Sex    Sex // vacío => SexDefault
	Group  groups.Descriptor
	Traits []traits.Descriptor
}

// Create resuelve grupo y traits (política de alta) y persiste la mascota.
func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Pet{}, ErrInvalidInput
	}
	sex := in.Sex
	if sex == "" {
		sex = SexDefault
	}
	if !sex.Valid() {
		return Pet{}, ErrInvalidInput
	}

	g, err := s.groups.Resolve(ctx, in.Group)
	if err != nil {
		return Pet{}, err
	}
	ts, err := s.traits.ResolveAll(ctx, in.Traits, false)
	if err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		Name:      name,
		Age:       in.Age,
		Weight:    in.Weight,
		Sex:       sex,
		Group:     g,
		Traits:    ts,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id, ok := canonicalID(id)
	if !ok {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// canonicalID normaliza un id de mascota. Un id que no es uuid no puede existir
// (y postgres lo rechazaría como error de tipo), así que es un not found.
func canonicalID(raw string) (string, bool) {
	u, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return u.String(), true
}

// Page es una página de resultados más el total.
type Page struct {
	Items []Pet
	Count int
}

// List devuelve mascotas en orden de alta. limit <= 0 => todas.
func (s *Service) List(ctx context.Context, limit, offset int) (Page, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return Page{}, err
	}
	items, err := s.repo.List(ctx, ListFilter{Limit: limit, Offset: offset})
	if err != nil {
		return Page{}, err
	}
	return Page{Items: items, Count: n}, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id, ok := canonicalID(id)
	if !ok {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name *string
	Age  *int

	// Group sólo se aplica si trae scientific_name.
	Group *groups.Descriptor
	// Traits vacío no modifica las asociaciones; con elementos las reemplaza todas.
	Traits []traits.Descriptor
}

// Update aplica un PATCH. Grupo y traits se resuelven con la política de
// actualización (ver reconcile.UpdatePolicy).
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Age != nil {
		p.Age = *in.Age
	}

	if len(in.Traits) > 0 {
		ts, err := s.traits.ResolveAll(ctx, in.Traits, true)
		if err != nil {
			return Pet{}, err
		}
		p.Traits = ts
	}

	if in.Group != nil && strings.TrimSpace(in.Group.ScientificName) != "" {
		g, err := s.groups.ResolveForUpdate(ctx, *in.Group)
		if err != nil {
			return Pet{}, err
		}
		p.Group = g
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}
