package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-registry/internal/domain/pets"
	"pet-registry/internal/domain/traits"
)

type PetsRepo struct {
	db *sql.DB
	d  Dialect
}

func NewPetsRepo(db *sql.DB, d Dialect) *PetsRepo {
	return &PetsRepo{db: db, d: d}
}

const petColumns = `
	p.id, p.name, p.age, p.weight, p.sex,
	p.created_at, p.updated_at,
	g.id, g.scientific_name, g.created_at
`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, r.d.Rebind(`
			INSERT INTO pets (
				id, name, age, weight, sex, group_id,
				created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`),
			p.ID,
			p.Name,
			p.Age,
			p.Weight,
			string(p.Sex),
			p.Group.ID,
			p.CreatedAt.UTC(),
			p.UpdatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert pet: %w", err)
		}
		return r.insertTraits(ctx, tx, p.ID, p.TraitIDs())
	})
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.d.Rebind(`
			UPDATE pets
			SET
				name = ?,
				age = ?,
				weight = ?,
				sex = ?,
				group_id = ?,
				updated_at = ?
			WHERE id = ?
		`),
			p.Name,
			p.Age,
			p.Weight,
			string(p.Sex),
			p.Group.ID,
			p.UpdatedAt.UTC(),
			p.ID,
		)
		if err != nil {
			return fmt.Errorf("update pet: %w", err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return pets.ErrNotFound
		}

		// Reemplazo total del set de traits.
		if _, err := tx.ExecContext(ctx, r.d.Rebind(`DELETE FROM pet_traits WHERE pet_id = ?`), p.ID); err != nil {
			return fmt.Errorf("clear pet traits: %w", err)
		}
		return r.insertTraits(ctx, tx, p.ID, p.TraitIDs())
	})
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, r.d.Rebind(`
		SELECT `+petColumns+`
		FROM pets p
		JOIN pet_groups g ON g.id = p.group_id
		WHERE p.id = ?
	`), id)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, fmt.Errorf("get pet: %w", err)
	}

	byPet, err := r.loadTraits(ctx, []string{p.ID})
	if err != nil {
		return pets.Pet{}, err
	}
	p.Traits = byPet[p.ID]
	return p, nil
}

func (r *PetsRepo) List(ctx context.Context, filter pets.ListFilter) ([]pets.Pet, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT ` + petColumns + `
		FROM pets p
		JOIN pet_groups g ON g.id = p.group_id
		ORDER BY p.created_at ASC, p.id ASC
	`)

	args := []any{}
	switch {
	case filter.Limit > 0:
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, filter.Limit, max(filter.Offset, 0))
	case filter.Offset > 0:
		sb.WriteString(" LIMIT " + r.d.noLimit + " OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, r.d.Rebind(sb.String()), args...)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	// Cerrar antes de la segunda query: con sqlite en memoria hay una sola conexión.
	_ = rows.Close()

	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(out))
	for _, p := range out {
		ids = append(ids, p.ID)
	}
	byPet, err := r.loadTraits(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Traits = byPet[out[i].ID]
	}
	return out, nil
}

func (r *PetsRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pets`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pets: %w", err)
	}
	return n, nil
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, r.d.Rebind(`DELETE FROM pet_traits WHERE pet_id = ?`), id); err != nil {
			return fmt.Errorf("delete pet traits: %w", err)
		}
		res, err := tx.ExecContext(ctx, r.d.Rebind(`DELETE FROM pets WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("delete pet: %w", err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return pets.ErrNotFound
		}
		return nil
	})
}

func (r *PetsRepo) insertTraits(ctx context.Context, tx *sql.Tx, petID string, traitIDs []string) error {
	q := r.d.Rebind(`
		INSERT INTO pet_traits (pet_id, trait_id, seq)
		VALUES (?, ?, ?)
		ON CONFLICT DO NOTHING
	`)
	for i, tid := range traitIDs {
		if _, err := tx.ExecContext(ctx, q, petID, tid, i); err != nil {
			return fmt.Errorf("insert pet trait: %w", err)
		}
	}
	return nil
}

// loadTraits trae los traits de varias mascotas en una sola query, en orden
// de asociación.
func (r *PetsRepo) loadTraits(ctx context.Context, petIDs []string) (map[string][]traits.Trait, error) {
	args := make([]any, 0, len(petIDs))
	for _, id := range petIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, r.d.Rebind(`
		SELECT pt.pet_id, t.id, t.name, t.created_at
		FROM pet_traits pt
		JOIN traits t ON t.id = pt.trait_id
		WHERE pt.pet_id IN (`+placeholders(len(petIDs))+`)
		ORDER BY pt.pet_id, pt.seq
	`), args...)
	if err != nil {
		return nil, fmt.Errorf("load pet traits: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]traits.Trait, len(petIDs))
	for _, id := range petIDs {
		out[id] = []traits.Trait{}
	}
	for rows.Next() {
		var petID string
		var t traits.Trait
		if err := rows.Scan(&petID, &t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pet trait: %w", err)
		}
		out[petID] = append(out[petID], t)
	}
	return out, rows.Err()
}

func (r *PetsRepo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var p pets.Pet
	var sex string
	if err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Age,
		&p.Weight,
		&sex,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.Group.ID,
		&p.Group.ScientificName,
		&p.Group.CreatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	p.Sex = pets.Sex(sex)
	return p, nil
}
