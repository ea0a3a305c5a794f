package profile

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/churrasapp/churrasapp-api/internal/pkg/upload"
)

// Service handles profile business logic
type Service struct {
	repo      Repository
	uploadSvc *upload.Service
}

// NewService creates profile service
func NewService(repo Repository, uploadSvc *upload.Service) *Service {
	return &Service{repo: repo, uploadSvc: uploadSvc}
}

// GetByID returns a profile by its ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	prof, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, ErrProfileNotFound
	}
	return prof, nil
}

// GetByUserID returns the profile owned by a user
func (s *Service) GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	prof, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, ErrProfileNotFound
	}
	return prof, nil
}

// Update applies partial updates to the caller's own profile.
// Role and email are identity fields and never change here.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, req *UpdateRequest) (*Profile, error) {
	prof, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		prof.Name = *req.Name
	}
	if req.Phone != nil {
		prof.Phone = sql.NullString{String: *req.Phone, Valid: *req.Phone != ""}
	}
	if req.Location != nil {
		prof.Location = sql.NullString{String: *req.Location, Valid: *req.Location != ""}
	}

	if err := s.repo.Update(ctx, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

// SetAvatar points the caller's profile at an uploaded object key
func (s *Service) SetAvatar(ctx context.Context, userID uuid.UUID, key string) (*Profile, error) {
	prof, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Verify the object was actually uploaded
	if _, err := s.uploadSvc.VerifyUpload(ctx, key); err != nil {
		return nil, ErrAvatarNotVerified
	}

	url := s.uploadSvc.GetPublicURL(key)
	if err := s.repo.SetAvatar(ctx, prof.ID, key, url); err != nil {
		return nil, err
	}

	prof.AvatarKey = sql.NullString{String: key, Valid: true}
	prof.AvatarURL = sql.NullString{String: url, Valid: true}
	return prof, nil
}
