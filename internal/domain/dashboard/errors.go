package dashboard

import "errors"

var (
	ErrNoProfile       = errors.New("profile not found")
	ErrNotProfessional = errors.New("dashboard is only available to professionals")
)
