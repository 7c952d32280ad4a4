package asset

import "errors"

var (
	ErrUnknownRegistry       = errors.New("unknown asset registry")
	ErrAssetNotFound         = errors.New("asset not found")
	ErrAssetExists           = errors.New("asset already exists")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrNotAssetOwner         = errors.New("not the asset owner")
	ErrNotAllowed            = errors.New("operator not allowed")
)
