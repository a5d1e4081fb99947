package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyKey = errors.New("natural key is empty")
)

// Match define cómo se compara la natural key contra las filas existentes.
// Ambas variantes son case-insensitive.
type Match string

const (
	MatchExact    Match = "exact"
	MatchContains Match = "contains"
)

func ParseMatch(s string) (Match, error) {
	switch Match(strings.ToLower(strings.TrimSpace(s))) {
	case MatchExact:
		return MatchExact, nil
	case MatchContains, "":
		return MatchContains, nil
	default:
		return "", fmt.Errorf("unknown match mode %q", s)
	}
}

// Fold es la forma canónica de una key para comparar sin mayúsculas. Los
// stores SQL la guardan en su propia columna: lower() de sqlite sólo pliega ASCII.
func Fold(s string) string {
	return strings.ToLower(s)
}

// Matches reporta si candidate satisface key según el modo.
// Lo usan los stores in-memory; los stores SQL expresan lo mismo en la query.
func (m Match) Matches(candidate, key string) bool {
	c := Fold(candidate)
	k := Fold(key)
	if m == MatchContains {
		return strings.Contains(c, k)
	}
	return c == k
}

// Policy es la política única de get-or-create.
type Policy struct {
	Match Match
	// Lowercase: la fila creada guarda la key en minúsculas.
	Lowercase bool
}

var (
	// CreatePolicy se usa al crear mascotas (POST).
	CreatePolicy = Policy{Match: MatchExact}

	// UpdatePolicy se usa en PATCH. Conserva el comportamiento histórico:
	// substring match y alta en minúsculas.
	UpdatePolicy = Policy{Match: MatchContains, Lowercase: true}
)

func (p Policy) normalize(key string) string {
	if p.Lowercase {
		return strings.ToLower(key)
	}
	return key
}

// Outcome indica si la referencia ya existía o se creó.
type Outcome string

const (
	OutcomeFound   Outcome = "found"
	OutcomeCreated Outcome = "created"
)

// Recorder recibe el resultado de cada resolución (métricas).
type Recorder interface {
	Reconciled(entity, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) Reconciled(string, string) {}

// NopRecorder descarta todo.
func NopRecorder() Recorder { return nopRecorder{} }

// Finder busca la primera fila (la más antigua) que matchea key.
type Finder[T any] func(ctx context.Context, key string, m Match) (T, bool, error)

// Creator inserta una fila con key ya normalizada y devuelve la fila persistida.
// Si otra request la creó antes, debe devolver la existente (upsert).
type Creator[T any] func(ctx context.Context, key string) (T, error)

// Resolve aplica get-or-create: si existe una fila que matchea la devuelve sin
// tocarla, si no la crea. Los errores del store se propagan tal cual.
func Resolve[T any](ctx context.Context, key string, p Policy, find Finder[T], create Creator[T]) (T, Outcome, error) {
	var zero T

	key = strings.TrimSpace(key)
	if key == "" {
		return zero, "", ErrEmptyKey
	}

	found, ok, err := find(ctx, key, p.Match)
	if err != nil {
		return zero, "", err
	}
	if ok {
		return found, OutcomeFound, nil
	}

	created, err := create(ctx, p.normalize(key))
	if err != nil {
		return zero, "", err
	}
	return created, OutcomeCreated, nil
}
