package booking

import "errors"

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrListingNotFound     = errors.New("listing not found")
	ErrNoProfile           = errors.New("profile not found, create a profile first")
	ErrNotBookingParty     = errors.New("you are not a party to this booking")
	ErrOnlyClientsCanBook  = errors.New("only clients can create bookings")
	ErrOwnListing          = errors.New("professionals cannot book their own listing")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrStatusConflict      = errors.New("booking status changed concurrently")
	ErrGuestCountExceeded  = errors.New("guest count exceeds listing capacity")
)
