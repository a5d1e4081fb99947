package pets_test

import (
	"context"
	"strings"
	"testing"

	mem "pet-registry/internal/adapters/storage/memory"
	"pet-registry/internal/domain/groups"
	"pet-registry/internal/domain/pets"
	"pet-registry/internal/domain/traits"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	svc    *pets.Service
	groups *groups.Service
	traits *traits.Service
}

func newEnv() env {
	gr := mem.NewGroupRepo()
	tr := mem.NewTraitRepo()
	gs := groups.NewService(gr, groups.Options{})
	ts := traits.NewService(tr, traits.Options{})
	return env{
		svc:    pets.NewService(mem.NewPetRepo(gr, tr), gs, ts),
		groups: gs,
		traits: ts,
	}
}

func rex() pets.CreateInput {
	return pets.CreateInput{
		Name:   "Rex",
		Age:    3,
		Weight: pets.Weight(125),
		Group:  groups.Descriptor{ScientificName: "Canis lupus"},
		Traits: []traits.Descriptor{{Name: "Loyal"}},
	}
}

func traitNames(p pets.Pet) []string {
	out := []string{}
	for _, t := range p.Traits {
		out = append(out, t.Name)
	}
	return out
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	p, err := e.svc.Create(ctx, rex())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, pets.SexDefault, p.Sex)
	assert.Equal(t, "Canis lupus", p.Group.ScientificName)
	assert.Equal(t, []string{"Loyal"}, traitNames(p))

	// Mismo grupo con otra capitalización => misma fila.
	in := rex()
	in.Name = "Fido"
	in.Group.ScientificName = "canis lupus"
	in.Traits = []traits.Descriptor{{Name: "LOYAL"}, {Name: "Calm"}}
	p2, err := e.svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, p.Group.ID, p2.Group.ID)
	assert.Equal(t, []string{"Loyal", "Calm"}, traitNames(p2))

	got, err := e.svc.GetByID(ctx, p2.ID)
	require.NoError(t, err)
	assert.Equal(t, p2.TraitIDs(), got.TraitIDs())
}

func TestService_CreateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	in := rex()
	in.Name = " "
	_, err := e.svc.Create(ctx, in)
	assert.ErrorIs(t, err, pets.ErrInvalidInput)

	in = rex()
	in.Sex = "Robot"
	_, err = e.svc.Create(ctx, in)
	assert.ErrorIs(t, err, pets.ErrInvalidInput)
}

func TestService_UpdateScalarsAndTraits(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	in := rex()
	in.Traits = []traits.Descriptor{{Name: "Loyal"}, {Name: "Calm"}}
	p, err := e.svc.Create(ctx, in)
	require.NoError(t, err)

	name := "Rex II"
	age := 4
	up, err := e.svc.Update(ctx, p.ID, pets.UpdateInput{
		Name:   &name,
		Age:    &age,
		Traits: []traits.Descriptor{{Name: "Playful"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Rex II", up.Name)
	assert.Equal(t, 4, up.Age)
	assert.Equal(t, p.Weight, up.Weight)
	// Reemplazo total, y el alta del path de update queda en minúsculas.
	assert.Equal(t, []string{"playful"}, traitNames(up))
	assert.Equal(t, p.Group.ID, up.Group.ID)
}

func TestService_UpdateEmptyTraitsKeepsAssociations(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	p, err := e.svc.Create(ctx, rex())
	require.NoError(t, err)

	up, err := e.svc.Update(ctx, p.ID, pets.UpdateInput{Traits: []traits.Descriptor{}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Loyal"}, traitNames(up))
}

func TestService_UpdateGroupUsesSubstringMatch(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	p, err := e.svc.Create(ctx, rex())
	require.NoError(t, err)
	cat, err := e.groups.Resolve(ctx, groups.Descriptor{ScientificName: "Felis catus"})
	require.NoError(t, err)

	up, err := e.svc.Update(ctx, p.ID, pets.UpdateInput{Group: &groups.Descriptor{ScientificName: "catus"}})
	require.NoError(t, err)
	assert.Equal(t, cat.ID, up.Group.ID)

	// group sin scientific_name no cambia nada.
	up2, err := e.svc.Update(ctx, p.ID, pets.UpdateInput{Group: &groups.Descriptor{}})
	require.NoError(t, err)
	assert.Equal(t, cat.ID, up2.Group.ID)
}

func TestService_NotFound(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	_, err := e.svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, pets.ErrNotFound)

	_, err = e.svc.Update(ctx, "missing", pets.UpdateInput{})
	assert.ErrorIs(t, err, pets.ErrNotFound)

	assert.ErrorIs(t, e.svc.Delete(ctx, "missing"), pets.ErrNotFound)
	assert.ErrorIs(t, e.svc.Delete(ctx, ""), pets.ErrNotFound)
}

func TestService_MalformedIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	p, err := e.svc.Create(ctx, rex())
	require.NoError(t, err)

	for _, id := range []string{"abc", "does-not-exist", "123", p.ID + "x"} {
		_, err := e.svc.GetByID(ctx, id)
		assert.ErrorIs(t, err, pets.ErrNotFound, "get %q", id)

		_, err = e.svc.Update(ctx, id, pets.UpdateInput{})
		assert.ErrorIs(t, err, pets.ErrNotFound, "update %q", id)

		assert.ErrorIs(t, e.svc.Delete(ctx, id), pets.ErrNotFound, "delete %q", id)
	}

	// Un uuid válido pero desconocido también es not found.
	_, err = e.svc.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, pets.ErrNotFound)

	// Mayúsculas y espacios se normalizan al id guardado.
	got, err := e.svc.GetByID(ctx, " "+strings.ToUpper(p.ID)+" ")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	require.NoError(t, e.svc.Delete(ctx, strings.ToUpper(p.ID)))
}

func TestService_ListPages(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	for _, name := range []string{"a", "b", "c"} {
		in := rex()
		in.Name = name
		_, err := e.svc.Create(ctx, in)
		require.NoError(t, err)
	}

	page, err := e.svc.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Count)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "a", page.Items[0].Name)

	page, err = e.svc.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "c", page.Items[0].Name)
}
