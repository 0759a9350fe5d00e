package pricing

import "errors"

var (
	// ErrNegativePrice is returned when a catalog base price is below zero.
	ErrNegativePrice = errors.New("base price cannot be negative")

	// ErrUnnamedAdjustment is returned for a fee or discount without a name.
	ErrUnnamedAdjustment = errors.New("fee and discount names are required")

	ErrIndexOutOfRange = errors.New("adjustment index out of range")
)
