package photo

import "errors"

var (
	ErrPhotoNotFound     = errors.New("photo not found")
	ErrNoProfile         = errors.New("profile not found")
	ErrNotProfessional   = errors.New("only professionals manage portfolio photos")
	ErrNotPhotoOwner     = errors.New("you can only manage your own photos")
	ErrUploadNotVerified = errors.New("uploaded object not found in storage")
	ErrStorageDisabled   = errors.New("object storage is not configured")
	ErrInvalidFileType   = errors.New("unsupported image type")
	ErrFileTooLarge      = errors.New("file exceeds the maximum allowed size")
)
