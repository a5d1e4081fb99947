package traits

import (
	"context"
	"errors"

	"pet-registry/internal/domain/reconcile"
)

var (
	ErrNotFound = errors.New("trait not found")
)

type Repository interface {
	FindByName(ctx context.Context, name string, m reconcile.Match) (Trait, bool, error)
	Create(ctx context.Context, t Trait) (Trait, error)
	GetByID(ctx context.Context, id string) (Trait, error)
}
