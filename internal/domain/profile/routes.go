package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns profile router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/me", h.Me)
		r.Patch("/me", h.Update)
		r.Patch("/me/avatar", h.SetAvatar)
	})

	// Public profile view
	r.Get("/{id}", h.GetByID)

	return r
}
