package mapper

import "errors"

// Sentinel errors returned before any trial runs.
var (
	// ErrInvalidConfig is returned when run parameters are out of range.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMalformedInput wraps every problem found in student or workshop records.
	ErrMalformedInput = errors.New("malformed input")

	// ErrDuplicateID is returned when two records share an id.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrMissingRecord is returned for nil entries in a record list.
	ErrMissingRecord = errors.New("missing record")

	// ErrInvalidWeights is returned when a score schedule is not increasing and convex.
	ErrInvalidWeights = errors.New("score weights must start at 0 and be strictly increasing and convex")
)
