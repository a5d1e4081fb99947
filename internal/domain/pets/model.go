package pets

import (
	"time"

	"pet-registry/internal/domain/groups"
	"pet-registry/internal/domain/traits"
)

// Sex define el sexo de la mascota.
// @Enum Male, Female, Not Informed
type Sex string

const (
	SexMale        Sex = "Male"
	SexFemale      Sex = "Female"
	SexNotInformed Sex = "Not Informed"

	SexDefault = SexNotInformed
)

var sexChoices = []Sex{SexMale, SexFemale, SexNotInformed}

func (s Sex) Valid() bool {
	for _, c := range sexChoices {
		if s == c {
			return true
		}
	}
	return false
}

// Pet es el registro principal. Group es obligatorio; Traits es un set
// (sin repetidos) que conserva el orden de asociación.
type Pet struct {
	ID string

	Name   string
	Age    int
	Weight Weight
	Sex    Sex

	Group  groups.Group
	Traits []traits.Trait

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TraitIDs devuelve los ids de Traits en orden.
func (p Pet) TraitIDs() []string {
	out := make([]string, 0, len(p.Traits))
	for _, t := range p.Traits {
		out = append(out, t.ID)
	}
	return out
}
