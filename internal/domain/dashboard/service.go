package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/churrasapp/churrasapp-api/internal/domain/booking"
	"github.com/churrasapp/churrasapp-api/internal/domain/profile"
)

// Service computes dashboard statistics for professionals
type Service struct {
	bookingRepo booking.Repository
	profileRepo profile.Repository
	cache       *Cache
	now         func() time.Time
}

// NewService creates dashboard service
func NewService(bookingRepo booking.Repository, profileRepo profile.Repository, cache *Cache) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		profileRepo: profileRepo,
		cache:       cache,
		now:         time.Now,
	}
}

// GetStats returns the caller's dashboard statistics. Cached values are
// served when present; cache failures fall through to a fresh compute.
func (s *Service) GetStats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	prof, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, ErrNoProfile
	}
	if !prof.IsProfessional() {
		return nil, ErrNotProfessional
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, prof.ID)
		if err != nil {
			log.Warn().Err(err).Msg("dashboard cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	bookings, err := s.bookingRepo.ListForProfessional(ctx, prof.ID)
	if err != nil {
		return nil, err
	}

	stats := Compute(bookings, s.now())

	if s.cache != nil {
		if err := s.cache.Set(ctx, prof.ID, stats); err != nil {
			log.Warn().Err(err).Msg("dashboard cache write failed")
		}
	}

	return stats, nil
}
