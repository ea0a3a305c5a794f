package photo

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns photo router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Post("/presign", h.Presign)
	r.Post("/confirm", h.Confirm)
	r.Delete("/{id}", h.Delete)

	return r
}
