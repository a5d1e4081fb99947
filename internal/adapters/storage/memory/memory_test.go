package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"pet-registry/internal/domain/groups"
	"pet-registry/internal/domain/pets"
	"pet-registry/internal/domain/reconcile"
	"pet-registry/internal/domain/traits"
)

func TestGroupRepo_CreateReturnsExistingOnSameKey(t *testing.T) {
	ctx := context.Background()
	r := NewGroupRepo()

	first, err := r.Create(ctx, groups.Group{ID: "g1", ScientificName: "Canis lupus"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := r.Create(ctx, groups.Group{ID: "g2", ScientificName: "canis LUPUS"})
	if err != nil {
		t.Fatalf("create dup: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected existing group %s, got %s", first.ID, second.ID)
	}

	if _, err := r.GetByID(ctx, "g2"); err != groups.ErrNotFound {
		t.Fatalf("expected ErrNotFound for discarded id, got %v", err)
	}
}

func TestGroupRepo_CreateRequiresID(t *testing.T) {
	if _, err := NewGroupRepo().Create(context.Background(), groups.Group{ScientificName: "x"}); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestTraitRepo_FindByNameFirstMatchWins(t *testing.T) {
	ctx := context.Background()
	r := NewTraitRepo()
	_, _ = r.Create(ctx, traits.Trait{ID: "t1", Name: "category"})
	_, _ = r.Create(ctx, traits.Trait{ID: "t2", Name: "cat"})

	got, ok, err := r.FindByName(ctx, "CAT", reconcile.MatchContains)
	if err != nil || !ok {
		t.Fatalf("expected match, ok=%v err=%v", ok, err)
	}
	if got.ID != "t1" {
		t.Fatalf("expected oldest match t1, got %s", got.ID)
	}

	got, ok, _ = r.FindByName(ctx, "CAT", reconcile.MatchExact)
	if !ok || got.ID != "t2" {
		t.Fatalf("expected exact match t2, got %+v ok=%v", got, ok)
	}
}

func TestTraitRepo_ConcurrentCreateConverges(t *testing.T) {
	ctx := context.Background()
	r := NewTraitRepo()

	var wg sync.WaitGroup
	ids := make([]string, 10)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr, _ := r.Create(ctx, traits.Trait{ID: string(rune('a' + i)), Name: "Loyal"})
			ids[i] = tr.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		if id != ids[0] {
			t.Fatalf("expected a single trait row, got ids %v", ids)
		}
	}
}

func TestPetRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	gr := NewGroupRepo()
	tr := NewTraitRepo()
	r := NewPetRepo(gr, tr)

	g, _ := gr.Create(ctx, groups.Group{ID: "g1", ScientificName: "Canis lupus"})
	a, _ := tr.Create(ctx, traits.Trait{ID: "t1", Name: "loyal"})
	b, _ := tr.Create(ctx, traits.Trait{ID: "t2", Name: "calm"})

	now := time.Now()
	for i, id := range []string{"p1", "p2", "p3"} {
		err := r.Create(ctx, pets.Pet{
			ID:        id,
			Name:      id,
			Group:     g,
			Traits:    []traits.Trait{a},
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	if err := r.Create(ctx, pets.Pet{ID: "p1", Group: g}); err == nil {
		t.Fatalf("expected duplicate id error")
	}

	p, err := r.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Group.ScientificName != "Canis lupus" || len(p.Traits) != 1 || p.Traits[0].Name != "loyal" {
		t.Fatalf("pet not hydrated: %+v", p)
	}

	p.Traits = []traits.Trait{b}
	if err := r.Update(ctx, p); err != nil {
		t.Fatalf("update: %v", err)
	}
	p, _ = r.GetByID(ctx, "p1")
	if len(p.Traits) != 1 || p.Traits[0].ID != "t2" {
		t.Fatalf("expected traits replaced, got %+v", p.Traits)
	}

	page, _ := r.List(ctx, pets.ListFilter{Limit: 1, Offset: 1})
	if len(page) != 1 || page[0].ID != "p2" {
		t.Fatalf("unexpected page: %+v", page)
	}
	if out, _ := r.List(ctx, pets.ListFilter{Offset: 10}); len(out) != 0 {
		t.Fatalf("expected empty page past the end, got %d", len(out))
	}

	if err := r.Delete(ctx, "p2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := r.Delete(ctx, "p2"); err != pets.ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if n, _ := r.Count(ctx); n != 2 {
		t.Fatalf("expected 2 pets, got %d", n)
	}
	if err := r.Update(ctx, pets.Pet{ID: "p2"}); err != pets.ErrNotFound {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}
