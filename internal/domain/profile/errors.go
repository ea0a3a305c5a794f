package profile

import "errors"

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrNotProfileOwner   = errors.New("you can only edit your own profile")
	ErrAvatarNotVerified = errors.New("avatar upload could not be verified")
)
