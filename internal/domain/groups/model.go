package groups

import "time"

// Group es el grupo taxonómico de una mascota.
// ScientificName funciona como natural key (case-insensitive).
type Group struct {
	ID             string
	ScientificName string
	CreatedAt      time.Time
}

// Descriptor es lo que llega en el payload para referenciar un grupo.
type Descriptor struct {
	ScientificName string
}
