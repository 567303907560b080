package model

import "errors"

// Errors returned while decoding CSV cells.
var (
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidFlag     = errors.New("invalid boolean flag")
	ErrInvalidCapacity = errors.New("participants must be a positive integer or empty")
	ErrNoLanguages     = errors.New("at least one language code is required")
)
