package listing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines listing data access interface
type Repository interface {
	Create(ctx context.Context, listing *Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	ListAll(ctx context.Context) ([]*ListingWithOwner, error)
	ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*Listing, error)
	Update(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new listing repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, listing *Listing) error {
	query := `
		INSERT INTO services (id, professional_id, title, description, price_from, price_to,
		                      duration_hours, max_guests, location, image_keys, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		listing.ID,
		listing.ProfessionalID,
		listing.Title,
		listing.Description,
		listing.PriceFrom,
		listing.PriceTo,
		listing.DurationHours,
		listing.MaxGuests,
		listing.Location,
		listing.ImageKeys,
		listing.CreatedAt,
		listing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("listing repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	query := `SELECT * FROM services WHERE id = $1`
	var listing Listing
	err := r.db.GetContext(ctx, &listing, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &listing, nil
}

func (r *repository) ListAll(ctx context.Context) ([]*ListingWithOwner, error) {
	query := `
		SELECT s.*, p.name AS owner_name, p.avatar_url AS owner_avatar_url
		FROM services s
		JOIN profiles p ON p.id = s.professional_id
		ORDER BY s.created_at DESC
	`
	var listings []*ListingWithOwner
	err := r.db.SelectContext(ctx, &listings, query)
	return listings, err
}

func (r *repository) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*Listing, error) {
	query := `SELECT * FROM services WHERE professional_id = $1 ORDER BY created_at DESC`
	var listings []*Listing
	err := r.db.SelectContext(ctx, &listings, query, professionalID)
	return listings, err
}

func (r *repository) Update(ctx context.Context, listing *Listing) error {
	query := `
		UPDATE services
		SET title = $2, description = $3, price_from = $4, price_to = $5,
		    duration_hours = $6, max_guests = $7, location = $8, image_keys = $9, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		listing.ID,
		listing.Title,
		listing.Description,
		listing.PriceFrom,
		listing.PriceTo,
		listing.DurationHours,
		listing.MaxGuests,
		listing.Location,
		listing.ImageKeys,
	)
	return err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM services WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
