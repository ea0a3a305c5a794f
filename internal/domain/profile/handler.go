package profile

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/churrasapp/churrasapp-api/internal/middleware"
	"github.com/churrasapp/churrasapp-api/internal/pkg/response"
	"github.com/churrasapp/churrasapp-api/internal/pkg/validator"
)

// Handler handles profile HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates profile handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetByID handles GET /profiles/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid profile ID")
		return
	}

	prof, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if err == ErrProfileNotFound {
			response.NotFound(w, "Profile not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ProfileResponseFromEntity(prof))
}

// Me handles GET /profiles/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	prof, err := h.service.GetByUserID(r.Context(), userID)
	if err != nil {
		if err == ErrProfileNotFound {
			response.NotFound(w, "Profile not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ProfileResponseFromEntity(prof))
}

// Update handles PATCH /profiles/me
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	prof, err := h.service.Update(r.Context(), userID, &req)
	if err != nil {
		if err == ErrProfileNotFound {
			response.NotFound(w, "Profile not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ProfileResponseFromEntity(prof))
}

// SetAvatar handles PATCH /profiles/me/avatar
func (h *Handler) SetAvatar(w http.ResponseWriter, r *http.Request) {
	var req SetAvatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	prof, err := h.service.SetAvatar(r.Context(), userID, req.Key)
	if err != nil {
		switch err {
		case ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		case ErrAvatarNotVerified:
			response.BadRequest(w, "File not found. Please upload first.")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ProfileResponseFromEntity(prof))
}
