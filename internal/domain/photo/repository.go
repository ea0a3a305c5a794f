package photo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines photo data access interface
type Repository interface {
	Create(ctx context.Context, photo *Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*Photo, error)
	GetByKey(ctx context.Context, key string) (*Photo, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*Photo, error)
	// ListPendingThumbnails returns photos without a thumbnail that have
	// not yet exhausted their processing attempts, oldest first.
	ListPendingThumbnails(ctx context.Context, limit, maxAttempts int) ([]*Photo, error)
	SetThumbnail(ctx context.Context, id uuid.UUID, thumbKey, thumbURL string) error
	// MarkThumbnailFailed records a failed processing attempt. Once the
	// attempt count reaches the worker's bound the photo drops out of the
	// pending query.
	MarkThumbnailFailed(ctx context.Context, id uuid.UUID, msg string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new photo repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, photo *Photo) error {
	query := `
		INSERT INTO professional_photos (id, profile_id, key, url, thumb_key, thumb_url, original_name, mime_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		photo.ID,
		photo.ProfileID,
		photo.Key,
		photo.URL,
		photo.ThumbKey,
		photo.ThumbURL,
		photo.OriginalName,
		photo.MimeType,
		photo.SizeBytes,
		photo.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("photo repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Photo, error) {
	query := `SELECT * FROM professional_photos WHERE id = $1`
	var photo Photo
	err := r.db.GetContext(ctx, &photo, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &photo, nil
}

func (r *repository) GetByKey(ctx context.Context, key string) (*Photo, error) {
	query := `SELECT * FROM professional_photos WHERE key = $1`
	var photo Photo
	err := r.db.GetContext(ctx, &photo, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &photo, nil
}

func (r *repository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*Photo, error) {
	query := `SELECT * FROM professional_photos WHERE profile_id = $1 ORDER BY created_at DESC`
	var photos []*Photo
	err := r.db.SelectContext(ctx, &photos, query, profileID)
	return photos, err
}

func (r *repository) ListPendingThumbnails(ctx context.Context, limit, maxAttempts int) ([]*Photo, error) {
	query := `
		SELECT * FROM professional_photos
		WHERE thumb_key IS NULL
		  AND thumb_attempts < $2
		ORDER BY created_at ASC
		LIMIT $1
	`
	var photos []*Photo
	err := r.db.SelectContext(ctx, &photos, query, limit, maxAttempts)
	return photos, err
}

func (r *repository) SetThumbnail(ctx context.Context, id uuid.UUID, thumbKey, thumbURL string) error {
	query := `UPDATE professional_photos SET thumb_key = $2, thumb_url = $3, thumb_error = NULL WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, thumbKey, thumbURL)
	return err
}

func (r *repository) MarkThumbnailFailed(ctx context.Context, id uuid.UUID, msg string) error {
	if len(msg) > 2000 {
		msg = msg[:2000]
	}
	query := `
		UPDATE professional_photos
		SET thumb_attempts = thumb_attempts + 1, thumb_error = $2
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, msg)
	return err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM professional_photos WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
