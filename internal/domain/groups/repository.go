package groups

import (
	"context"
	"errors"

	"pet-registry/internal/domain/reconcile"
)

var (
	ErrNotFound = errors.New("group not found")
)

type Repository interface {
	// FindByName devuelve el grupo más antiguo cuyo scientific_name matchea.
	FindByName(ctx context.Context, name string, m reconcile.Match) (Group, bool, error)
	// Create inserta g; si ya existe un grupo con el mismo nombre (ignorando
	// mayúsculas) devuelve ese.
	Create(ctx context.Context, g Group) (Group, error)
	GetByID(ctx context.Context, id string) (Group, error)
}
