package traits

import "time"

// Trait es una característica de la mascota (p.ej. "loyal").
// Name funciona como natural key (case-insensitive).
type Trait struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Descriptor es lo que llega en el payload para referenciar un trait.
type Descriptor struct {
	Name string
}
