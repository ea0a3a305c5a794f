package listing

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/churrasapp/churrasapp-api/internal/domain/profile"
)

// Service handles listing business logic
type Service struct {
	repo        Repository
	profileRepo profile.Repository
}

// NewService creates listing service
func NewService(repo Repository, profileRepo profile.Repository) *Service {
	return &Service{repo: repo, profileRepo: profileRepo}
}

// Create publishes a new listing owned by the caller's professional profile
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateRequest) (*Listing, error) {
	prof, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prof == nil || !prof.Role.CanPublishListings() {
		return nil, ErrNoProfessionalRole
	}

	priceTo := sql.NullFloat64{}
	if req.PriceTo != nil {
		if *req.PriceTo < req.PriceFrom {
			return nil, ErrInvalidPriceRange
		}
		priceTo = sql.NullFloat64{Float64: *req.PriceTo, Valid: true}
	}

	now := time.Now()
	l := &Listing{
		ID:             uuid.New(),
		ProfessionalID: prof.ID,
		Title:          req.Title,
		Description:    req.Description,
		PriceFrom:      req.PriceFrom,
		PriceTo:        priceTo,
		DurationHours:  req.DurationHours,
		MaxGuests:      req.MaxGuests,
		Location:       sql.NullString{String: req.Location, Valid: req.Location != ""},
		ImageKeys:      req.ImageKeys,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// GetByID returns a listing by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrListingNotFound
	}
	return l, nil
}

// Search returns all listings matching a query and filter toggles.
// The whole catalog is fetched and filtered in memory: the catalog is small
// and the text predicate spans the joined owner name.
func (s *Service) Search(ctx context.Context, query string, toggles Toggles) ([]*ListingWithOwner, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(all, query, toggles), nil
}

// ListByProfessional returns all listings owned by a professional profile
func (s *Service) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*Listing, error) {
	return s.repo.ListByProfessional(ctx, professionalID)
}

// Update applies partial updates to a listing owned by the caller
func (s *Service) Update(ctx context.Context, userID, listingID uuid.UUID, req *UpdateRequest) (*Listing, error) {
	l, err := s.getOwned(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.PriceFrom != nil {
		l.PriceFrom = *req.PriceFrom
	}
	if req.PriceTo != nil {
		l.PriceTo = sql.NullFloat64{Float64: *req.PriceTo, Valid: true}
	}
	if l.PriceTo.Valid && l.PriceTo.Float64 < l.PriceFrom {
		return nil, ErrInvalidPriceRange
	}
	if req.DurationHours != nil {
		l.DurationHours = *req.DurationHours
	}
	if req.MaxGuests != nil {
		l.MaxGuests = *req.MaxGuests
	}
	if req.Location != nil {
		l.Location = sql.NullString{String: *req.Location, Valid: *req.Location != ""}
	}
	if req.ImageKeys != nil {
		l.ImageKeys = req.ImageKeys
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete removes a listing owned by the caller
func (s *Service) Delete(ctx context.Context, userID, listingID uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, listingID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, listingID)
}

// getOwned loads a listing and checks the caller owns it
func (s *Service) getOwned(ctx context.Context, userID, listingID uuid.UUID) (*Listing, error) {
	l, err := s.repo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrListingNotFound
	}

	prof, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prof == nil || l.ProfessionalID != prof.ID {
		return nil, ErrNotListingOwner
	}
	return l, nil
}
