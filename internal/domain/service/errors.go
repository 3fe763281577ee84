package service

import "errors"

// Sentinel errors for the pricing and decisioning engines. Both are raised
// synchronously; the engines perform no I/O so nothing here is retryable.
var (
	// ErrValidation marks malformed or out-of-domain input: an unset
	// manufacturing year, a non-positive vehicle value or monthly income.
	ErrValidation = errors.New("validation error")

	// ErrConfiguration marks missing or malformed engine configuration,
	// such as absent rate tiers.
	ErrConfiguration = errors.New("configuration error")
)
