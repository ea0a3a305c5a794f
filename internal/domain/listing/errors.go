package listing

import "errors"

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrNotListingOwner    = errors.New("you can only manage your own listings")
	ErrInvalidPriceRange  = errors.New("price_to must be greater than or equal to price_from")
	ErrNoProfessionalRole = errors.New("only professionals can publish listings")
)
