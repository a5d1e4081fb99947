package pets

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("pet not found")
)

// Repository persiste mascotas. Los adapters guardan sólo las referencias
// (group id, trait ids) y devuelven la mascota hidratada.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	// Update reemplaza escalares, grupo y el set completo de traits.
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context, filter ListFilter) ([]Pet, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}

// ListFilter pagina por offset. Limit <= 0 => sin límite.
type ListFilter struct {
	Limit  int
	Offset int
}
