package listing

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest for POST /listings
type CreateRequest struct {
	Title         string   `json:"title" validate:"required,min=3,max=150"`
	Description   string   `json:"description" validate:"required,min=10,max=2000"`
	PriceFrom     float64  `json:"price_from" validate:"required,gt=0"`
	PriceTo       *float64 `json:"price_to" validate:"omitempty,gt=0"`
	DurationHours int      `json:"duration_hours" validate:"required,gte=1,lte=24"`
	MaxGuests     int      `json:"max_guests" validate:"required,gte=1,lte=1000"`
	Location      string   `json:"location" validate:"omitempty,max=200"`
	ImageKeys     []string `json:"image_keys" validate:"omitempty,max=10"`
}

// UpdateRequest for PATCH /listings/{id}
type UpdateRequest struct {
	Title         *string  `json:"title" validate:"omitempty,min=3,max=150"`
	Description   *string  `json:"description" validate:"omitempty,min=10,max=2000"`
	PriceFrom     *float64 `json:"price_from" validate:"omitempty,gt=0"`
	PriceTo       *float64 `json:"price_to" validate:"omitempty,gt=0"`
	DurationHours *int     `json:"duration_hours" validate:"omitempty,gte=1,lte=24"`
	MaxGuests     *int     `json:"max_guests" validate:"omitempty,gte=1,lte=1000"`
	Location      *string  `json:"location" validate:"omitempty,max=200"`
	ImageKeys     []string `json:"image_keys" validate:"omitempty,max=10"`
}

// ListingResponse represents a listing in API responses
type ListingResponse struct {
	ID             uuid.UUID `json:"id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	PriceFrom      float64   `json:"price_from"`
	PriceTo        *float64  `json:"price_to,omitempty"`
	DurationHours  int       `json:"duration_hours"`
	MaxGuests      int       `json:"max_guests"`
	Location       string    `json:"location,omitempty"`
	ImageURLs      []string  `json:"image_urls"`
	OwnerName      string    `json:"owner_name,omitempty"`
	OwnerAvatarURL string    `json:"owner_avatar_url,omitempty"`
	CreatedAt      string    `json:"created_at"`
}

// URLResolver maps object keys to public URLs
type URLResolver func(key string) string

// ResponseFromEntity converts a listing entity to a response DTO
func ResponseFromEntity(l *Listing, resolve URLResolver) *ListingResponse {
	urls := make([]string, 0, len(l.ImageKeys))
	for _, key := range l.ImageKeys {
		urls = append(urls, resolve(key))
	}

	resp := &ListingResponse{
		ID:             l.ID,
		ProfessionalID: l.ProfessionalID,
		Title:          l.Title,
		Description:    l.Description,
		PriceFrom:      l.PriceFrom,
		DurationHours:  l.DurationHours,
		MaxGuests:      l.MaxGuests,
		Location:       l.Location.String,
		ImageURLs:      urls,
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
	}
	if l.PriceTo.Valid {
		priceTo := l.PriceTo.Float64
		resp.PriceTo = &priceTo
	}
	return resp
}

// ResponseFromJoined converts a joined listing row to a response DTO
func ResponseFromJoined(l *ListingWithOwner, resolve URLResolver) *ListingResponse {
	resp := ResponseFromEntity(&l.Listing, resolve)
	resp.OwnerName = l.OwnerName
	resp.OwnerAvatarURL = l.OwnerAvatarURL.String
	return resp
}
