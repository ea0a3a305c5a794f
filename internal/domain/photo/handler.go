package photo

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/churrasapp/churrasapp-api/internal/middleware"
	"github.com/churrasapp/churrasapp-api/internal/pkg/response"
	"github.com/churrasapp/churrasapp-api/internal/pkg/validator"
)

// Handler handles photo HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates photo handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Presign handles POST /photos/presign
func (h *Handler) Presign(w http.ResponseWriter, r *http.Request) {
	var req PresignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	result, err := h.service.Presign(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrStorageDisabled:
			response.Error(w, http.StatusServiceUnavailable, "UPLOADS_DISABLED", "File uploads are not available")
		case ErrNoProfile, ErrNotProfessional:
			response.Forbidden(w, "Only professionals can upload portfolio photos")
		case ErrInvalidFileType:
			response.BadRequest(w, "Unsupported image type (allowed: jpeg, png, webp, gif)")
		case ErrFileTooLarge:
			response.BadRequest(w, "File exceeds the 10MB limit")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Confirm handles POST /photos/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	p, err := h.service.Confirm(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrStorageDisabled:
			response.Error(w, http.StatusServiceUnavailable, "UPLOADS_DISABLED", "File uploads are not available")
		case ErrNoProfile, ErrNotProfessional:
			response.Forbidden(w, "Only professionals can upload portfolio photos")
		case ErrNotPhotoOwner:
			response.Forbidden(w, "This upload belongs to another profile")
		case ErrUploadNotVerified:
			response.BadRequest(w, "Uploaded file not found, upload before confirming")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, ResponseFromEntity(p))
}

// ListByProfile handles GET /profiles/{id}/photos
func (h *Handler) ListByProfile(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid profile ID")
		return
	}

	photos, err := h.service.ListByProfile(r.Context(), profileID)
	if err != nil {
		if err == ErrNoProfile {
			response.NotFound(w, "Profile not found")
			return
		}
		response.InternalError(w)
		return
	}

	items := make([]*PhotoResponse, len(photos))
	for i, p := range photos {
		items[i] = ResponseFromEntity(p)
	}

	response.OK(w, items)
}

// Delete handles DELETE /photos/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid photo ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		switch err {
		case ErrPhotoNotFound:
			response.NotFound(w, "Photo not found")
		case ErrNoProfile, ErrNotProfessional, ErrNotPhotoOwner:
			response.Forbidden(w, "You can only manage your own photos")
		default:
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}
