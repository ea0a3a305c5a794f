package photo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/churrasapp/churrasapp-api/internal/domain/profile"
	"github.com/churrasapp/churrasapp-api/internal/pkg/upload"
)

// ProcessChannel is the Redis channel that wakes the photo worker after
// a new photo is confirmed.
const ProcessChannel = "photos:process"

// photoKeyPrefix namespaces portfolio photos inside the bucket
const photoKeyPrefix = "photos"

// Service handles photo business logic
type Service struct {
	repo        Repository
	profileRepo profile.Repository
	uploadSvc   *upload.Service
	redis       *redis.Client
}

// NewService creates photo service. redis may be nil, the worker then
// relies on its poll interval alone.
func NewService(repo Repository, profileRepo profile.Repository, uploadSvc *upload.Service, redisClient *redis.Client) *Service {
	return &Service{repo: repo, profileRepo: profileRepo, uploadSvc: uploadSvc, redis: redisClient}
}

// Presign issues a presigned PUT URL for a direct browser upload
func (s *Service) Presign(ctx context.Context, userID uuid.UUID, req *PresignRequest) (*upload.PresignResult, error) {
	if !s.uploadSvc.IsConfigured() {
		return nil, ErrStorageDisabled
	}

	if _, err := s.professionalProfile(ctx, userID); err != nil {
		return nil, err
	}

	if !upload.AllowedImageTypes[req.ContentType] {
		return nil, ErrInvalidFileType
	}
	if req.Size > upload.MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return s.uploadSvc.GeneratePresignedURL(ctx, userID, photoKeyPrefix, req.Filename, req.ContentType, req.Size)
}

// Confirm records an uploaded photo after verifying the object landed in
// storage. Confirming the same key twice returns the existing photo.
func (s *Service) Confirm(ctx context.Context, userID uuid.UUID, req *ConfirmRequest) (*Photo, error) {
	if !s.uploadSvc.IsConfigured() {
		return nil, ErrStorageDisabled
	}

	prof, err := s.professionalProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByKey(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.ProfileID != prof.ID {
			return nil, ErrNotPhotoOwner
		}
		return existing, nil
	}

	meta, err := s.uploadSvc.VerifyUpload(ctx, req.Key)
	if err != nil {
		if errors.Is(err, upload.ErrNotFound) {
			return nil, ErrUploadNotVerified
		}
		return nil, err
	}

	p := &Photo{
		ID:           uuid.New(),
		ProfileID:    prof.ID,
		Key:          req.Key,
		URL:          s.uploadSvc.GetPublicURL(req.Key),
		OriginalName: req.OriginalName,
		MimeType:     meta.ContentType,
		SizeBytes:    meta.Size,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.notifyWorker(ctx, p.ID)
	return p, nil
}

// ListByProfile returns a profile's photos, newest first
func (s *Service) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*Photo, error) {
	prof, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, ErrNoProfile
	}
	return s.repo.ListByProfile(ctx, profileID)
}

// Delete removes a photo owned by the caller, including its stored objects
func (s *Service) Delete(ctx context.Context, userID, photoID uuid.UUID) error {
	prof, err := s.professionalProfile(ctx, userID)
	if err != nil {
		return err
	}

	p, err := s.repo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPhotoNotFound
	}
	if p.ProfileID != prof.ID {
		return ErrNotPhotoOwner
	}

	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return err
	}

	// Storage cleanup is best effort, orphaned objects are harmless.
	if err := s.uploadSvc.DeleteObject(ctx, p.Key); err != nil {
		log.Warn().Err(err).Str("key", p.Key).Msg("failed to delete photo object")
	}
	if p.HasThumbnail() {
		if err := s.uploadSvc.DeleteObject(ctx, p.ThumbKey.String); err != nil {
			log.Warn().Err(err).Str("key", p.ThumbKey.String).Msg("failed to delete thumbnail object")
		}
	}

	return nil
}

// professionalProfile loads the caller's profile and checks the role
func (s *Service) professionalProfile(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
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
	return prof, nil
}

// notifyWorker publishes the photo ID so the worker picks it up without
// waiting for the next poll.
func (s *Service) notifyWorker(ctx context.Context, photoID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Publish(ctx, ProcessChannel, photoID.String()).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to publish photo process event")
	}
}
