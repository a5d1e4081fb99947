package sqlstore

import (
	"fmt"
	"strconv"
	"strings"

	"pet-registry/internal/domain/reconcile"
)

// Dialect cubre las pocas diferencias entre postgres y sqlite que usan los repos.
type Dialect struct {
	name       string
	numbered   bool   // $1, $2... en vez de ?
	containsFn string // función (haystack, needle) => posición, 0 si no está
	noLimit    string // LIMIT que no limita (para OFFSET sin LIMIT)
}

var (
	Postgres = Dialect{name: "postgres", numbered: true, containsFn: "strpos", noLimit: "ALL"}
	SQLite   = Dialect{name: "sqlite", containsFn: "instr", noLimit: "-1"}
)

func (d Dialect) String() string { return d.name }

// Rebind reescribe los ? de la query al formato del dialecto.
func (d Dialect) Rebind(q string) string {
	if !d.numbered {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(q[i])
	}
	return b.String()
}

// matchClause expresa reconcile.Match sobre una columna ya plegada con
// reconcile.Fold; el argumento también tiene que venir plegado.
func (d Dialect) matchClause(column string, m reconcile.Match) string {
	if m == reconcile.MatchContains {
		return fmt.Sprintf("%s(%s, ?) > 0", d.containsFn, column)
	}
	return column + " = ?"
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
