package photo

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Photo represents a professional portfolio photo (matches professional_photos table)
type Photo struct {
	ID            uuid.UUID      `db:"id"`
	ProfileID     uuid.UUID      `db:"profile_id"`
	Key           string         `db:"key"`
	URL           string         `db:"url"`
	ThumbKey      sql.NullString `db:"thumb_key"`
	ThumbURL      sql.NullString `db:"thumb_url"`
	ThumbAttempts int            `db:"thumb_attempts"`
	ThumbError    sql.NullString `db:"thumb_error"`
	OriginalName  string         `db:"original_name"`
	MimeType      string         `db:"mime_type"`
	SizeBytes     int64          `db:"size_bytes"`
	CreatedAt     time.Time      `db:"created_at"`
}

// HasThumbnail reports whether the worker already produced a thumbnail
func (p *Photo) HasThumbnail() bool {
	return p.ThumbKey.Valid && p.ThumbKey.String != ""
}
