package domain

import "errors"

var (
	// ErrNotFound is returned when an identifier or note does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrInvalidReview is wrapped by every review validation failure.
	ErrInvalidReview = errors.New("invalid review")

	// ErrUnknownValue is returned when parsing an enum value outside its fixed set.
	ErrUnknownValue = errors.New("unknown value")
)
