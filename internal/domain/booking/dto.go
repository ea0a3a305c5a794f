package booking

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest for POST /bookings
type CreateRequest struct {
	ServiceID  uuid.UUID `json:"service_id" validate:"required"`
	EventDate  string    `json:"event_date" validate:"required,event_date"`
	EventTime  string    `json:"event_time" validate:"required,min=4,max=8"`
	GuestCount int       `json:"guest_count" validate:"required,gte=1"`
	Location   string    `json:"location" validate:"required,max=200"`
	TotalPrice float64   `json:"total_price" validate:"required,gt=0"`
	Notes      string    `json:"notes" validate:"omitempty,max=500"`
}

// UpdateStatusRequest for PATCH /bookings/{id}/status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,booking_status"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID             uuid.UUID `json:"id"`
	ClientID       uuid.UUID `json:"client_id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	ServiceID      uuid.UUID `json:"service_id"`
	EventDate      string    `json:"event_date"`
	EventTime      string    `json:"event_time"`
	GuestCount     int       `json:"guest_count"`
	Location       string    `json:"location,omitempty"`
	Status         string    `json:"status"`
	TotalPrice     float64   `json:"total_price"`
	Notes          string    `json:"notes,omitempty"`
	IsHistory      bool      `json:"is_history"`
	CreatedAt      string    `json:"created_at"`
	UpdatedAt      string    `json:"updated_at"`

	// Joined fields (present on list endpoints)
	ServiceTitle    string `json:"service_title,omitempty"`
	ServiceDuration int    `json:"service_duration_hours,omitempty"`
	OtherPartyName  string `json:"other_party_name,omitempty"`
	OtherPartyPhone string `json:"other_party_phone,omitempty"`
	OtherPartyEmail string `json:"other_party_email,omitempty"`
}

// ResponseFromEntity converts a booking entity to a response DTO
func ResponseFromEntity(b *Booking, now time.Time) *BookingResponse {
	return &BookingResponse{
		ID:             b.ID,
		ClientID:       b.ClientID,
		ProfessionalID: b.ProfessionalID,
		ServiceID:      b.ServiceID,
		EventDate:      b.EventDate.Format("2006-01-02"),
		EventTime:      b.EventTime,
		GuestCount:     b.GuestCount,
		Location:       b.Location.String,
		Status:         string(b.Status),
		TotalPrice:     b.TotalPrice,
		Notes:          b.Notes.String,
		IsHistory:      b.IsHistory(now),
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      b.UpdatedAt.Format(time.RFC3339),
	}
}

// ResponseFromJoined converts a joined booking row to a response DTO
func ResponseFromJoined(b *BookingWithDetails, now time.Time) *BookingResponse {
	resp := ResponseFromEntity(&b.Booking, now)
	resp.ServiceTitle = b.ServiceTitle.String
	resp.ServiceDuration = int(b.ServiceDuration.Int64)
	resp.OtherPartyName = b.OtherPartyName.String
	resp.OtherPartyPhone = b.OtherPartyPhone.String
	resp.OtherPartyEmail = b.OtherPartyEmail.String
	return resp
}
