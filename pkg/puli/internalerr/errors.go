package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrImpossibleState = errors.New("impossible state")
	ErrNotDerivable    = errors.New("not derivable")
)
