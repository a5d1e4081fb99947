package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-registry/internal/adapters/storage/sqlite"
	"pet-registry/internal/adapters/storage/sqlstore"
	"pet-registry/internal/client"
	"pet-registry/internal/platform/metrics"
	"pet-registry/internal/router"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newServer(t *testing.T, opts router.Options) (*httptest.Server, *client.Client) {
	t.Helper()

	ts := httptest.NewServer(router.NewRouter(opts))
	t.Cleanup(ts.Close)

	c, err := client.New(ts.URL, ts.Client().Transport)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return ts, c
}

func rexPayload() map[string]any {
	return map[string]any{
		"name":   "Rex",
		"age":    3,
		"weight": 12.5,
		"group":  map[string]any{"scientific_name": "Canis lupus"},
		"traits": []map[string]any{{"name": "Loyal"}},
	}
}

func TestHTTP_EndToEnd_PetLifecycle(t *testing.T) {
	ts, c := newServer(t, router.Options{PageSize: 10})
	ctx := context.Background()

	// 1) Alta del ejemplo
	st, body := doReq(t, ts.URL, "POST", "/pets", rexPayload())
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}
	var rex client.Pet
	if err := json.Unmarshal(body, &rex); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rex.Group.ScientificName != "Canis lupus" {
		t.Fatalf("expected group Canis lupus, got %q", rex.Group.ScientificName)
	}
	if len(rex.Traits) != 1 || rex.Traits[0].Name != "Loyal" {
		t.Fatalf("expected trait Loyal, got %+v", rex.Traits)
	}
	if rex.Sex != "Not Informed" || rex.Weight != 12.5 {
		t.Fatalf("unexpected sex/weight: %q %v", rex.Sex, rex.Weight)
	}

	// 2) Segundo alta con otra capitalización reutiliza grupo y trait
	fido, err := c.CreatePet(ctx, client.CreatePet{
		Name:   "Fido",
		Age:    5,
		Weight: 20,
		Sex:    "Male",
		Group:  client.Group{ScientificName: "canis lupus"},
		Traits: []client.Trait{{Name: "loyal"}},
	})
	if err != nil {
		t.Fatalf("create second pet: %v", err)
	}
	if fido.Group.ID != rex.Group.ID {
		t.Fatalf("expected group reuse, got %s vs %s", fido.Group.ID, rex.Group.ID)
	}
	if fido.Traits[0].ID != rex.Traits[0].ID {
		t.Fatalf("expected trait reuse")
	}

	// 3) GET por id
	got, err := c.GetPet(ctx, rex.ID)
	if err != nil {
		t.Fatalf("get pet: %v", err)
	}
	if got.Name != "Rex" {
		t.Fatalf("expected Rex, got %q", got.Name)
	}

	// 4) PATCH reemplaza el set de traits
	name := "Rex II"
	up, err := c.UpdatePet(ctx, rex.ID, client.UpdatePet{
		Name:   &name,
		Traits: []client.Trait{{Name: "Playful"}, {Name: "Calm"}},
	})
	if err != nil {
		t.Fatalf("patch pet: %v", err)
	}
	if up.Name != "Rex II" || len(up.Traits) != 2 {
		t.Fatalf("unexpected patch result: %+v", up)
	}
	if up.Traits[0].Name != "playful" || up.Traits[1].Name != "calm" {
		t.Fatalf("expected lowercased new traits, got %+v", up.Traits)
	}

	// 5) Lista paginada
	page, err := c.ListPets(ctx, 1)
	if err != nil {
		t.Fatalf("list pets: %v", err)
	}
	if page.Count != 2 || len(page.Results) != 2 || page.Next != nil || page.Previous != nil {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Results[0].ID != rex.ID {
		t.Fatalf("expected creation order")
	}

	// 6) DELETE y después 404
	if err := c.DeletePet(ctx, rex.ID); err != nil {
		t.Fatalf("delete pet: %v", err)
	}
	if _, err := c.GetPet(ctx, rex.ID); !client.IsNotFound(err) {
		t.Fatalf("expected 404 after delete, got %v", err)
	}
	if err := c.DeletePet(ctx, rex.ID); !client.IsNotFound(err) {
		t.Fatalf("expected 404 deleting twice, got %v", err)
	}
}

func TestHTTP_DeleteUnknown(t *testing.T) {
	ts, _ := newServer(t, router.Options{})

	st, body := doReq(t, ts.URL, "DELETE", "/pets/does-not-exist", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", st)
	}
	if !strings.Contains(string(body), `"Not found."`) {
		t.Fatalf("unexpected body: %s", string(body))
	}
}

func TestHTTP_UpdateSubstringMatch(t *testing.T) {
	ts, c := newServer(t, router.Options{})
	ctx := context.Background()

	seed := rexPayload()
	seed["traits"] = []map[string]any{{"name": "category"}}
	st, body := doReq(t, ts.URL, "POST", "/pets", seed)
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}
	var first client.Pet
	_ = json.Unmarshal(body, &first)

	// "cat" en PATCH matchea el trait "category" ya existente
	up, err := c.UpdatePet(ctx, first.ID, client.UpdatePet{Traits: []client.Trait{{Name: "cat"}}})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if len(up.Traits) != 1 || up.Traits[0].ID != first.Traits[0].ID {
		t.Fatalf("expected substring reuse of category, got %+v", up.Traits)
	}

	// En POST el match es exacto: "cat" crea un trait nuevo
	other := rexPayload()
	other["traits"] = []map[string]any{{"name": "cat"}}
	st, body = doReq(t, ts.URL, "POST", "/pets", other)
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}
	var second client.Pet
	_ = json.Unmarshal(body, &second)
	if second.Traits[0].ID == first.Traits[0].ID || second.Traits[0].Name != "cat" {
		t.Fatalf("expected a new trait cat, got %+v", second.Traits)
	}
}

func TestHTTP_ValidationErrors(t *testing.T) {
	ts, _ := newServer(t, router.Options{})

	payload := rexPayload()
	delete(payload, "name")
	payload["age"] = "old"
	st, body := doReq(t, ts.URL, "POST", "/pets", payload)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", st, string(body))
	}
	var fields map[string][]string
	if err := json.Unmarshal(body, &fields); err != nil {
		t.Fatalf("unmarshal: %v body=%s", err, string(body))
	}
	if len(fields["name"]) == 0 || len(fields["age"]) == 0 {
		t.Fatalf("expected name and age errors, got %s", string(body))
	}

	st, body = doRaw(t, ts.URL, "POST", "/pets", "{not json")
	if st != http.StatusBadRequest || !strings.Contains(string(body), "JSON parse error") {
		t.Fatalf("expected 400 JSON parse error, got %d body=%s", st, string(body))
	}

	// PATCH sobre id inexistente => 404 aunque el body sea inválido
	st, _ = doRaw(t, ts.URL, "PATCH", "/pets/missing", "{not json")
	if st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", st)
	}
}

func TestHTTP_Pagination(t *testing.T) {
	ts, c := newServer(t, router.Options{PageSize: 2})
	ctx := context.Background()

	for _, n := range []string{"a", "b", "c"} {
		p := rexPayload()
		p["name"] = n
		if st, body := doReq(t, ts.URL, "POST", "/pets", p); st != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", st, string(body))
		}
	}

	first, err := c.ListPets(ctx, 1)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if first.Count != 3 || len(first.Results) != 2 || first.Next == nil || first.Previous != nil {
		t.Fatalf("unexpected page 1: %+v", first)
	}
	if !strings.HasSuffix(*first.Next, "/pets?page=2") {
		t.Fatalf("unexpected next: %s", *first.Next)
	}

	second, err := c.ListPets(ctx, 2)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(second.Results) != 1 || second.Next != nil || second.Previous == nil {
		t.Fatalf("unexpected page 2: %+v", second)
	}
	if second.Results[0].Name != "c" {
		t.Fatalf("expected c on page 2, got %q", second.Results[0].Name)
	}

	if _, err := c.ListPets(ctx, 3); !client.IsNotFound(err) {
		t.Fatalf("expected 404 Invalid page., got %v", err)
	}
	if st, body := doReq(t, ts.URL, "GET", "/pets?page=zero", nil); st != http.StatusNotFound || !strings.Contains(string(body), "Invalid page.") {
		t.Fatalf("expected 404 Invalid page., got %d body=%s", st, string(body))
	}
}

func TestHTTP_PaginationDisabled(t *testing.T) {
	ts, c := newServer(t, router.Options{})

	if st, body := doReq(t, ts.URL, "POST", "/pets", rexPayload()); st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}
	all, err := c.ListAllPets(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 pet, got %d", len(all))
	}
}

func TestHTTP_SQLiteBackend(t *testing.T) {
	db, err := sqlite.Open(sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ts, c := newServer(t, router.Options{DB: db, Dialect: sqlstore.SQLite, PageSize: 10})
	ctx := context.Background()

	rex, err := c.CreatePet(ctx, client.CreatePet{
		Name:   "Rex",
		Age:    3,
		Weight: 12,
		Group:  client.Group{ScientificName: "Canis lupus"},
		Traits: []client.Trait{{Name: "Loyal"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	st, body := doReq(t, ts.URL, "GET", "/pets/"+rex.ID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	if !strings.Contains(string(body), `"weight":12.0`) {
		t.Fatalf("expected one-decimal weight, got %s", string(body))
	}

	other, err := c.CreatePet(ctx, client.CreatePet{
		Name:   "Bolt",
		Age:    1,
		Weight: 3.5,
		Group:  client.Group{ScientificName: "CANIS LUPUS"},
		Traits: []client.Trait{},
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if other.Group.ID != rex.Group.ID {
		t.Fatalf("expected group reuse on sqlite")
	}

	// Ids que no son uuid => 404, no error del store
	for _, m := range []string{"GET", "PATCH", "DELETE"} {
		if st, body := doReq(t, ts.URL, m, "/pets/not-a-uuid", map[string]any{"name": "x"}); st != http.StatusNotFound {
			t.Fatalf("expected 404 for %s malformed id, got %d body=%s", m, st, string(body))
		}
	}

	if err := c.DeletePet(ctx, rex.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	page, err := c.ListPets(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Count != 1 || page.Results[0].ID != other.ID {
		t.Fatalf("unexpected page after delete: %+v", page)
	}
}

func TestHTTP_HealthMetricsSwagger(t *testing.T) {
	m := metrics.New()
	ts, _ := newServer(t, router.Options{Metrics: m})

	if st, body := doReq(t, ts.URL, "GET", "/health", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health: %d %s", st, string(body))
	}
	if st, body := doReq(t, ts.URL, "POST", "/pets", rexPayload()); st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	st, body := doReq(t, ts.URL, "GET", "/metrics", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	for _, want := range []string{
		`pet_registry_http_requests_total{method="POST",route="/pets`,
		`pet_registry_reconciliations_total{entity="group",outcome="created"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics missing %q", want)
		}
	}
	n, err := testutil.GatherAndCount(m.Registry(), "pet_registry_reconciliations_total")
	if err != nil || n != 2 {
		t.Fatalf("expected group and trait series, got %d (%v)", n, err)
	}

	if st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", nil); st != http.StatusOK || !strings.Contains(string(body), "/pets/{petID}") {
		t.Fatalf("unexpected swagger doc: %d", st)
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}
	return send(t, baseURL, method, path, rdr)
}

func doRaw(t *testing.T, baseURL, method, path, raw string) (int, []byte) {
	t.Helper()
	return send(t, baseURL, method, path, strings.NewReader(raw))
}

func send(t *testing.T, baseURL, method, path string, rdr io.Reader) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
