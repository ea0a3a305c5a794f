package booking

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/churrasapp/churrasapp-api/internal/domain/listing"
	"github.com/churrasapp/churrasapp-api/internal/domain/profile"
)

// StatsInvalidator drops cached dashboard statistics for a professional
// after a booking changes status.
type StatsInvalidator interface {
	Invalidate(ctx context.Context, professionalID uuid.UUID) error
}

// Service handles booking business logic
type Service struct {
	repo        Repository
	profileRepo profile.Repository
	listingRepo listing.Repository
	stats       StatsInvalidator
}

// NewService creates booking service. stats may be nil when no cache is wired.
func NewService(repo Repository, profileRepo profile.Repository, listingRepo listing.Repository, stats StatsInvalidator) *Service {
	return &Service{repo: repo, profileRepo: profileRepo, listingRepo: listingRepo, stats: stats}
}

// Create places a new booking on a listing. Only clients may book, the
// professional is derived from the listing, and the guest count must fit
// the listing capacity.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateRequest) (*Booking, error) {
	prof, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, ErrNoProfile
	}
	if !prof.Role.CanRequestBookings() {
		return nil, ErrOnlyClientsCanBook
	}

	l, err := s.listingRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrListingNotFound
	}
	if l.ProfessionalID == prof.ID {
		return nil, ErrOwnListing
	}
	if req.GuestCount > l.MaxGuests {
		return nil, ErrGuestCountExceeded
	}

	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	b := &Booking{
		ID:             uuid.New(),
		ClientID:       prof.ID,
		ProfessionalID: l.ProfessionalID,
		ServiceID:      l.ID,
		EventDate:      eventDate,
		EventTime:      req.EventTime,
		GuestCount:     req.GuestCount,
		Location:       sql.NullString{String: req.Location, Valid: req.Location != ""},
		Status:         StatusPending,
		TotalPrice:     req.TotalPrice,
		Notes:          sql.NullString{String: req.Notes, Valid: req.Notes != ""},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetByID returns a booking visible to the caller. Only the two parties
// may read a booking.
func (s *Service) GetByID(ctx context.Context, userID, bookingID uuid.UUID) (*Booking, error) {
	b, _, err := s.getAsParty(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListForCaller returns the caller's bookings, joined with listing and
// counterpart details. Which side of the booking is matched follows the
// caller's profile role.
func (s *Service) ListForCaller(ctx context.Context, userID uuid.UUID) ([]*BookingWithDetails, error) {
	prof, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, ErrNoProfile
	}

	if prof.IsProfessional() {
		return s.repo.ListForProfessional(ctx, prof.ID)
	}
	return s.repo.ListForClient(ctx, prof.ID)
}

// UpdateStatus moves a booking through its lifecycle. The caller must be a
// party to the booking and the transition must be allowed for its role.
// The write is guarded by the status the caller observed, so two racing
// updates cannot both land.
func (s *Service) UpdateStatus(ctx context.Context, userID, bookingID uuid.UUID, newStatus Status) (*Booking, error) {
	b, prof, err := s.getAsParty(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(b.Status, newStatus, prof.Role) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, b.Status, newStatus); err != nil {
		return nil, err
	}
	b.Status = newStatus
	b.UpdatedAt = time.Now()

	if s.stats != nil {
		if err := s.stats.Invalidate(ctx, b.ProfessionalID); err != nil {
			log.Warn().Err(err).Str("professional_id", b.ProfessionalID.String()).Msg("failed to invalidate stats cache")
		}
	}

	return b, nil
}

// getAsParty loads a booking and the caller's profile, checking the caller
// is one of the two parties.
func (s *Service) getAsParty(ctx context.Context, userID, bookingID uuid.UUID) (*Booking, *profile.Profile, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if b == nil {
		return nil, nil, ErrBookingNotFound
	}

	prof, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if prof == nil {
		return nil, nil, ErrNoProfile
	}

	if b.ClientID != prof.ID && b.ProfessionalID != prof.ID {
		return nil, nil, ErrNotBookingParty
	}
	return b, prof, nil
}
