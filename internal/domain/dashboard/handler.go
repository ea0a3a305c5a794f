package dashboard

import (
	"net/http"

	"github.com/churrasapp/churrasapp-api/internal/middleware"
	"github.com/churrasapp/churrasapp-api/internal/pkg/response"
)

// Handler handles dashboard HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates dashboard handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetStats handles GET /dashboard/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	stats, err := h.service.GetStats(r.Context(), userID)
	if err != nil {
		switch err {
		case ErrNoProfile:
			response.Forbidden(w, "Create a profile first")
		case ErrNotProfessional:
			response.Forbidden(w, "Dashboard is only available to professionals")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, stats)
}
