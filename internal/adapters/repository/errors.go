package repository

import "errors"

// Sentinel kinds for roster store errors.
var (
	ErrNotFound      = errors.New("athlete not found")
	ErrInvalidLimit  = errors.New("invalid rankings limit")
	ErrInvalidRecord = errors.New("invalid stat record")
	ErrStaleRanking  = errors.New("stale ranking snapshot")
)
