package listing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns listing router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public catalog
	r.Get("/", h.Search)
	r.Get("/{id}", h.GetByID)

	// Owner management
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}
