package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pet-registry/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type HandlerOptions struct {
	// PageSize > 0 activa la paginación por ?page=N en GET /pets.
	PageSize int
	Logger   logger.Logger
}

func RegisterRoutes(r chi.Router, svc *Service, opts HandlerOptions) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	h := &handler{svc: svc, pageSize: opts.PageSize, log: log}

	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", h.createPet)
		pr.Get("/", h.listPets)

		pr.Get("/{petID}", h.getPet)
		pr.Patch("/{petID}", h.updatePet)
		pr.Delete("/{petID}", h.deletePet)
	})
}

type handler struct {
	svc      *Service
	pageSize int
	log      logger.Logger
}

// createPetRequest documenta el body del POST; el decode real lo hace decodeCreate
// para poder reportar errores por campo.
type createPetRequest struct {
	Name   string         `json:"name" example:"Rex"`
	Age    int            `json:"age" example:"3"`
	Weight float64        `json:"weight" example:"12.5"`
	Sex    Sex            `json:"sex" enums:"Male,Female,Not Informed" default:"Not Informed"`
	Group  groupPayload   `json:"group"`
	Traits []traitPayload `json:"traits"`
}

type groupPayload struct {
	ScientificName string `json:"scientific_name" example:"Canis lupus"`
}

type traitPayload struct {
	Name string `json:"name" example:"Loyal"`
}

type groupResponse struct {
	ID             string    `json:"id"`
	ScientificName string    `json:"scientific_name"`
	CreatedAt      time.Time `json:"created_at"`
}

type traitResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// petResponse es la representación pública de una mascota.
type petResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Age    int             `json:"age"`
	Weight Weight          `json:"weight" swaggertype:"number"`
	Sex    Sex             `json:"sex"`
	Group  groupResponse   `json:"group"`
	Traits []traitResponse `json:"traits"`
}

type pageResponse struct {
	Count    int           `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []petResponse `json:"results"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

// createPet godoc
// @Summary Crear mascota
// @Description Crea una mascota. El grupo y los traits se buscan por nombre (match exacto, sin distinguir mayúsculas) y se crean si no existen.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {object} map[string]interface{} "errores por campo"
// @Router /pets [post]
func (h *handler) createPet(w http.ResponseWriter, r *http.Request) {
	in, err := decodeCreate(r.Body)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPetResponse(p))
}

// listPets godoc
// @Summary Listar mascotas
// @Description Lista todas las mascotas en orden de alta. Con paginación activa devuelve {count, next, previous, results}.
// @Tags pets
// @Produce json
// @Param page query int false "Número de página (desde 1) o 'last'"
// @Success 200 {object} pageResponse
// @Failure 404 {object} detailResponse "Invalid page."
// @Router /pets [get]
func (h *handler) listPets(w http.ResponseWriter, r *http.Request) {
	if h.pageSize <= 0 {
		page, err := h.svc.List(r.Context(), 0, 0)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponses(page.Items))
		return
	}

	total, err := h.svc.Count(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	pageNum, ok := resolvePage(r.URL.Query().Get("page"), total, h.pageSize)
	if !ok {
		writeJSON(w, http.StatusNotFound, detailResponse{Detail: "Invalid page."})
		return
	}

	page, err := h.svc.List(r.Context(), h.pageSize, (pageNum-1)*h.pageSize)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := pageResponse{
		Count:   page.Count,
		Results: toPetResponses(page.Items),
	}
	if pageNum*h.pageSize < page.Count {
		next := pageURL(r, pageNum+1)
		resp.Next = &next
	}
	if pageNum > 1 {
		prev := pageURL(r, pageNum-1)
		resp.Previous = &prev
	}

	writeJSON(w, http.StatusOK, resp)
}

// getPet godoc
// @Summary Obtener mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {object} detailResponse
// @Router /pets/{petID} [get]
func (h *handler) getPet(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPetResponse(p))
}

// updatePet godoc
// @Summary Actualizar mascota (parcial)
// @Description Aplica name y age si vienen. Si viene traits con elementos reemplaza todas las asociaciones; si viene group lo reasigna. En ambos casos la búsqueda es por substring (sin distinguir mayúsculas) y lo que se crea queda en minúsculas.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body createPetRequest false "Cualquier subconjunto de campos"
// @Success 200 {object} petResponse
// @Failure 400 {object} map[string]interface{} "errores por campo"
// @Failure 404 {object} detailResponse
// @Router /pets/{petID} [patch]
func (h *handler) updatePet(w http.ResponseWriter, r *http.Request) {
	petID := chi.URLParam(r, "petID")

	// 404 antes que 400, igual que un lookup previo a validar.
	if _, err := h.svc.GetByID(r.Context(), petID); err != nil {
		h.writeError(w, r, err)
		return
	}

	in, err := decodeUpdate(r.Body)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	p, err := h.svc.Update(r.Context(), petID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPetResponse(p))
}

// deletePet godoc
// @Summary Borrar mascota
// @Tags pets
// @Param petID path string true "ID de la mascota"
// @Success 204
// @Failure 404 {object} detailResponse
// @Router /pets/{petID} [delete]
func (h *handler) deletePet(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "petID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, verr.Fields)
	case errors.Is(err, ErrMalformedJSON):
		writeJSON(w, http.StatusBadRequest, detailResponse{Detail: err.Error()})
	case errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, detailResponse{Detail: err.Error()})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, detailResponse{Detail: "Not found."})
	default:
		h.log.Error("request failed", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"error":      err.Error(),
		})
		writeJSON(w, http.StatusInternalServerError, detailResponse{Detail: "internal error"})
	}
}

// resolvePage interpreta ?page=. Vacío => 1, "last" => última página.
// La página 1 siempre es válida aunque no haya resultados.
func resolvePage(raw string, total, size int) (int, bool) {
	last := (total + size - 1) / size
	if last < 1 {
		last = 1
	}

	raw = strings.TrimSpace(raw)
	switch raw {
	case "":
		return 1, true
	case "last":
		return last, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > last {
		return 0, false
	}
	return n, true
}

// pageURL arma la URL absoluta de otra página; la página 1 va sin ?page.
func pageURL(r *http.Request, page int) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path}

	q := r.URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func toPetResponse(p Pet) petResponse {
	ts := make([]traitResponse, 0, len(p.Traits))
	for _, t := range p.Traits {
		ts = append(ts, traitResponse{
			ID:        t.ID,
			Name:      t.Name,
			CreatedAt: t.CreatedAt,
		})
	}
	return petResponse{
		ID:     p.ID,
		Name:   p.Name,
		Age:    p.Age,
		Weight: p.Weight,
		Sex:    p.Sex,
		Group: groupResponse{
			ID:             p.Group.ID,
			ScientificName: p.Group.ScientificName,
			CreatedAt:      p.Group.CreatedAt,
		},
		Traits: ts,
	}
}

func toPetResponses(items []Pet) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
