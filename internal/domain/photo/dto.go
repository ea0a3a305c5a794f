package photo

import (
	"time"

	"github.com/google/uuid"
)

// PresignRequest for POST /photos/presign
type PresignRequest struct {
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"required"`
	Size        int64  `json:"size" validate:"required,gt=0"`
}

// ConfirmRequest for POST /photos/confirm
type ConfirmRequest struct {
	Key          string `json:"key" validate:"required,max=512"`
	OriginalName string `json:"original_name" validate:"omitempty,max=255"`
}

// PhotoResponse represents a photo in API responses
type PhotoResponse struct {
	ID           uuid.UUID `json:"id"`
	ProfileID    uuid.UUID `json:"profile_id"`
	URL          string    `json:"url"`
	ThumbURL     string    `json:"thumb_url,omitempty"`
	OriginalName string    `json:"original_name,omitempty"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    string    `json:"created_at"`
}

// ResponseFromEntity converts a photo entity to a response DTO
func ResponseFromEntity(p *Photo) *PhotoResponse {
	return &PhotoResponse{
		ID:           p.ID,
		ProfileID:    p.ProfileID,
		URL:          p.URL,
		ThumbURL:     p.ThumbURL.String,
		OriginalName: p.OriginalName,
		MimeType:     p.MimeType,
		SizeBytes:    p.SizeBytes,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}
