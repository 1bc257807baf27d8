package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/n3vocab/internal/config"
	"github.com/heartmarshall/n3vocab/internal/transport/middleware"
)

// NewRouter mounts the health checks, the lesson API and, when graphql is not
// nil, the GraphQL endpoint behind the shared middleware stack. Request IDs
// are assigned first so every later layer, the panic handler included,
// logs them.
func NewRouter(log *slog.Logger, cors config.CORSConfig, health *HealthHandler, lessons *LessonHandler, graphql http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS(cors),
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/live", health.Live)
	r.Get("/ready", health.Ready)
	r.Get("/health", health.Health)

	r.Route("/api/lessons", func(r chi.Router) {
		r.Get("/", lessons.List)
		r.Get("/{id}", lessons.Get)
	})

	if graphql != nil {
		r.Get("/graphql", graphql.ServeHTTP)
		r.Post("/graphql", graphql.ServeHTTP)
	}

	return r
}
