package scoring

import (
	"errors"
)

// Sentinel kinds for weight and aggregation errors. Callers match
// with errors.Is; the wrapped message names the offending category
// (and record, where one is involved).
var (
	ErrMissingWeight   = errors.New("missing category weight")
	ErrUnknownCategory = errors.New("unknown weight category")
	ErrInvalidWeight   = errors.New("invalid category weight")
	ErrMissingScore    = errors.New("missing category score")
)
