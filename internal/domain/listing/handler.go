package listing

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/churrasapp/churrasapp-api/internal/middleware"
	"github.com/churrasapp/churrasapp-api/internal/pkg/response"
	"github.com/churrasapp/churrasapp-api/internal/pkg/upload"
	"github.com/churrasapp/churrasapp-api/internal/pkg/validator"
)

// Handler handles listing HTTP requests
type Handler struct {
	service   *Service
	uploadSvc *upload.Service
}

// NewHandler creates listing handler
func NewHandler(service *Service, uploadSvc *upload.Service) *Handler {
	return &Handler{service: service, uploadSvc: uploadSvc}
}

// Search handles GET /listings?q=picanha&filters=budget,nearby
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	toggles := ParseToggles(r.URL.Query().Get("filters"))

	listings, err := h.service.Search(r.Context(), query, toggles)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*ListingResponse, len(listings))
	for i, l := range listings {
		items[i] = ResponseFromJoined(l, h.uploadSvc.GetPublicURL)
	}

	response.OK(w, items)
}

// GetByID handles GET /listings/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid listing ID")
		return
	}

	l, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if err == ErrListingNotFound {
			response.NotFound(w, "Listing not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ResponseFromEntity(l, h.uploadSvc.GetPublicURL))
}

// ListByProfessional handles GET /profiles/{id}/listings
func (h *Handler) ListByProfessional(w http.ResponseWriter, r *http.Request) {
	professionalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid profile ID")
		return
	}

	listings, err := h.service.ListByProfessional(r.Context(), professionalID)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*ListingResponse, len(listings))
	for i, l := range listings {
		items[i] = ResponseFromEntity(l, h.uploadSvc.GetPublicURL)
	}

	response.OK(w, items)
}

// Create handles POST /listings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	l, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrNoProfessionalRole:
			response.Forbidden(w, "Only professionals can publish listings")
		case ErrInvalidPriceRange:
			response.BadRequest(w, "price_to must be greater than or equal to price_from")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, ResponseFromEntity(l, h.uploadSvc.GetPublicURL))
}

// Update handles PATCH /listings/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid listing ID")
		return
	}

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
	l, err := h.service.Update(r.Context(), userID, id, &req)
	if err != nil {
		switch err {
		case ErrListingNotFound:
			response.NotFound(w, "Listing not found")
		case ErrNotListingOwner:
			response.Forbidden(w, "You can only manage your own listings")
		case ErrInvalidPriceRange:
			response.BadRequest(w, "price_to must be greater than or equal to price_from")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ResponseFromEntity(l, h.uploadSvc.GetPublicURL))
}

// Delete handles DELETE /listings/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid listing ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		switch err {
		case ErrListingNotFound:
			response.NotFound(w, "Listing not found")
		case ErrNotListingOwner:
			response.Forbidden(w, "You can only manage your own listings")
		default:
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}
