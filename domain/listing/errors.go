package listing

import "errors"

var (
	ErrNotOwner            = errors.New("caller does not own the asset")
	ErrNotApproved         = errors.New("marketplace is not approved to transfer the asset")
	ErrNoSuchListing       = errors.New("no such listing")
	ErrInsufficientFunds   = errors.New("payment allowance below listing price")
	ErrNotAuthorized       = errors.New("caller may not cancel the listing")
	ErrCollaboratorFailure = errors.New("asset registry call failed")
	ErrIdSpaceExhausted    = errors.New("listing id space exhausted")
	ErrRegistryClosed      = errors.New("listing registry closed")
)
