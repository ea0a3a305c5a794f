package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/churrasapp/churrasapp-api/internal/middleware"
)

// Routes returns dashboard router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(middleware.RequireProfessional())
	r.Get("/stats", h.GetStats)

	return r
}
