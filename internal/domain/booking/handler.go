package booking

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/churrasapp/churrasapp-api/internal/middleware"
	"github.com/churrasapp/churrasapp-api/internal/pkg/response"
	"github.com/churrasapp/churrasapp-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /bookings
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
	b, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrNoProfile:
			response.Forbidden(w, "Create a profile before booking")
		case ErrOnlyClientsCanBook:
			response.Forbidden(w, "Only clients can create bookings")
		case ErrListingNotFound:
			response.NotFound(w, "Listing not found")
		case ErrOwnListing:
			response.Forbidden(w, "You cannot book your own listing")
		case ErrGuestCountExceeded:
			response.BadRequest(w, "Guest count exceeds the listing capacity")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, ResponseFromEntity(b, time.Now()))
}

// List handles GET /bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	bookings, err := h.service.ListForCaller(r.Context(), userID)
	if err != nil {
		if err == ErrNoProfile {
			response.Forbidden(w, "Create a profile first")
			return
		}
		response.InternalError(w)
		return
	}

	now := time.Now()
	items := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = ResponseFromJoined(b, now)
	}

	response.OK(w, items)
}

// GetByID handles GET /bookings/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	b, err := h.service.GetByID(r.Context(), userID, id)
	if err != nil {
		switch err {
		case ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case ErrNoProfile, ErrNotBookingParty:
			response.Forbidden(w, "You are not a party to this booking")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ResponseFromEntity(b, time.Now()))
}

// UpdateStatus handles PATCH /bookings/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	b, err := h.service.UpdateStatus(r.Context(), userID, id, Status(req.Status))
	if err != nil {
		switch err {
		case ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case ErrNoProfile, ErrNotBookingParty:
			response.Forbidden(w, "You are not a party to this booking")
		case ErrInvalidTransition:
			response.BadRequest(w, "Status transition not allowed")
		case ErrStatusConflict:
			response.Conflict(w, "Booking was updated by the other party, reload and retry")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ResponseFromEntity(b, time.Now()))
}
