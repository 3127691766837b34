package internalerr

import "errors"

// Sentinel errors shared across the curation packages. Callers match
// them with errors.Is after the usual fmt.Errorf %w wrapping.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidConfig = errors.New("invalid configuration")
)
