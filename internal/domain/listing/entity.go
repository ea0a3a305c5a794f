package listing

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Listing represents a churrasco service offering (matches services table)
type Listing struct {
	ID             uuid.UUID       `db:"id"`
	ProfessionalID uuid.UUID       `db:"professional_id"` // owning profile
	Title          string          `db:"title"`
	Description    string          `db:"description"`
	PriceFrom      float64         `db:"price_from"`
	PriceTo        sql.NullFloat64 `db:"price_to"`
	DurationHours  int             `db:"duration_hours"`
	MaxGuests      int             `db:"max_guests"`
	Location       sql.NullString  `db:"location"`
	ImageKeys      pq.StringArray  `db:"image_keys"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// HasPriceRange returns true when the listing has an upper price bound.
// Without one the listing is priced at exactly PriceFrom.
func (l *Listing) HasPriceRange() bool {
	return l.PriceTo.Valid && l.PriceTo.Float64 >= l.PriceFrom
}

// ListingWithOwner is a listing joined with its owner's public profile fields
type ListingWithOwner struct {
	Listing
	OwnerName      string         `db:"owner_name"`
	OwnerAvatarURL sql.NullString `db:"owner_avatar_url"`
}
