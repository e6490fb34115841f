package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrUnknownPOS       = errors.New("unknown part of speech")
	ErrUnknownStep      = errors.New("unknown pipeline step")
)
