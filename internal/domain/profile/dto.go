package profile

import (
	"time"

	"github.com/google/uuid"
)

// UpdateRequest for PATCH /profiles/me
type UpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	Location *string `json:"location" validate:"omitempty,max=200"`
}

// SetAvatarRequest for PATCH /profiles/me/avatar
type SetAvatarRequest struct {
	Key string `json:"key" validate:"required"`
}

// ProfileResponse represents profile in API response
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Location  string    `json:"location,omitempty"`
	CreatedAt string    `json:"created_at"`
}

// ProfileResponseFromEntity converts entity to response DTO
func ProfileResponseFromEntity(p *Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Role:      string(p.Role),
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone.String,
		AvatarURL: p.AvatarURL.String,
		Location:  p.Location.String,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
