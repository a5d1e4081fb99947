package router

import (
	"database/sql"
	"net/http"

	_ "pet-registry/docs"

	mem "pet-registry/internal/adapters/storage/memory"
	"pet-registry/internal/adapters/storage/sqlstore"
	"pet-registry/internal/domain/groups"
	"pet-registry/internal/domain/pets"
	"pet-registry/internal/domain/reconcile"
	"pet-registry/internal/domain/traits"
	"pet-registry/internal/middleware"
	"pet-registry/internal/platform/logger"
	"pet-registry/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // puede ser nil

	// Opcional: si viene, usa SQL (Dialect elige postgres o sqlite). Si no, in-memory.
	DB      *sql.DB
	Dialect sqlstore.Dialect

	// Opcional: si es nil se crea uno propio.
	Metrics *metrics.Metrics

	// 0 => GET /pets devuelve lista plana.
	PageSize    int
	UpdateMatch reconcile.Match
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics(m))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		groupRepo groups.Repository
		traitRepo traits.Repository
		petRepo   pets.Repository
	)
	if opts.DB != nil {
		if opts.Dialect == (sqlstore.Dialect{}) {
			opts.Dialect = sqlstore.Postgres
		}
		groupRepo = sqlstore.NewGroupsRepo(opts.DB, opts.Dialect)
		traitRepo = sqlstore.NewTraitsRepo(opts.DB, opts.Dialect)
		petRepo = sqlstore.NewPetsRepo(opts.DB, opts.Dialect)
	} else {
		groupRepo = mem.NewGroupRepo()
		traitRepo = mem.NewTraitRepo()
		petRepo = mem.NewPetRepo(groupRepo, traitRepo)
	}

	// Services por módulo
	groupsSvc := groups.NewService(groupRepo, groups.Options{Recorder: m, UpdateMatch: opts.UpdateMatch})
	traitsSvc := traits.NewService(traitRepo, traits.Options{Recorder: m, UpdateMatch: opts.UpdateMatch})
	petsSvc := pets.NewService(petRepo, groupsSvc, traitsSvc)

	pets.RegisterRoutes(r, petsSvc, pets.HandlerOptions{
		PageSize: opts.PageSize,
		Logger:   log.With(map[string]any{"component": "pets"}),
	})

	return r
}
