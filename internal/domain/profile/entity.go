package profile

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/churrasapp/churrasapp-api/internal/domain/user"
)

// Profile represents a user profile (matches profiles table).
// One-to-one with the users table; role is denormalized for read paths.
type Profile struct {
	ID        uuid.UUID      `db:"id"`
	UserID    uuid.UUID      `db:"user_id"`
	Role      user.Role      `db:"role"`
	Name      string         `db:"name"`
	Email     string         `db:"email"`
	Phone     sql.NullString `db:"phone"`
	AvatarKey sql.NullString `db:"avatar_key"`
	AvatarURL sql.NullString `db:"avatar_url"`
	Location  sql.NullString `db:"location"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// IsProfessional returns true if the profile belongs to a professional
func (p *Profile) IsProfessional() bool {
	return p.Role == user.RoleProfessional
}
