package cart

import "errors"

var (
	ErrSnapshotNotFound = errors.New("cart snapshot not found")
	ErrInvalidQuantity  = errors.New("invalid cart quantity")
)
