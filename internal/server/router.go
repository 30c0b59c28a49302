package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kontorly/worksearch/internal/api"
	"github.com/kontorly/worksearch/internal/api/handlers"
	"github.com/kontorly/worksearch/internal/api/middleware"
)

type RouterConfig struct {
	// ServiceKey guards the API when non-empty; empty disables auth.
	ServiceKey       string
	SearchHandler    *handlers.SearchHandler
	WorkspaceHandler *handlers.WorkspaceHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		if cfg.ServiceKey != "" {
			r.Use(middleware.ServiceKeyAuth(cfg.ServiceKey))
		}

		r.Get("/search", cfg.SearchHandler.Search)

		if cfg.WorkspaceHandler != nil {
			r.Route("/workspaces/{workspaceID}/resources", func(r chi.Router) {
				r.Get("/", cfg.WorkspaceHandler.List)
				r.Post("/", cfg.WorkspaceHandler.Create)
				r.Delete("/{resourceID}", cfg.WorkspaceHandler.Delete)
			})
		}
	})

	return r
}
