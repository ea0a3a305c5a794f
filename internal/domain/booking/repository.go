package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines booking data access interface
type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListForClient(ctx context.Context, clientProfileID uuid.UUID) ([]*BookingWithDetails, error)
	ListForProfessional(ctx context.Context, professionalProfileID uuid.UUID) ([]*BookingWithDetails, error)
	// UpdateStatus moves a booking from one status to another atomically.
	// The expected status acts as an optimistic guard: if the row is no
	// longer in that status the update affects zero rows and
	// ErrStatusConflict is returned.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, booking *Booking) error {
	query := `
		INSERT INTO bookings (id, client_id, professional_id, service_id, event_date, event_time,
		                      guest_count, location, status, total_price, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.ClientID,
		booking.ProfessionalID,
		booking.ServiceID,
		booking.EventDate,
		booking.EventTime,
		booking.GuestCount,
		booking.Location,
		booking.Status,
		booking.TotalPrice,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("booking repository create: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `SELECT * FROM bookings WHERE id = $1`
	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListForClient(ctx context.Context, clientProfileID uuid.UUID) ([]*BookingWithDetails, error) {
	query := `
		SELECT b.*,
		       s.title AS service_title, s.duration_hours AS service_duration,
		       p.name AS other_party_name, p.phone AS other_party_phone, p.email AS other_party_email
		FROM bookings b
		LEFT JOIN services s ON s.id = b.service_id
		JOIN profiles p ON p.id = b.professional_id
		WHERE b.client_id = $1
		ORDER BY b.event_date DESC, b.created_at DESC
	`
	var bookings []*BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, clientProfileID)
	return bookings, err
}

func (r *repository) ListForProfessional(ctx context.Context, professionalProfileID uuid.UUID) ([]*BookingWithDetails, error) {
	query := `
		SELECT b.*,
		       s.title AS service_title, s.duration_hours AS service_duration,
		       p.name AS other_party_name, p.phone AS other_party_phone, p.email AS other_party_email
		FROM bookings b
		LEFT JOIN services s ON s.id = b.service_id
		JOIN profiles p ON p.id = b.client_id
		WHERE b.professional_id = $1
		ORDER BY b.event_date DESC, b.created_at DESC
	`
	var bookings []*BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, professionalProfileID)
	return bookings, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error {
	query := `UPDATE bookings SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStatusConflict
	}
	return nil
}
