package models

import "errors"

// Domain specific errors for the venue pipeline.
var (
	ErrInvalidQuery        = errors.New("invalid query")
	ErrProviderUnavailable = errors.New("search provider unavailable")
	ErrDetailUnavailable   = errors.New("venue details unavailable")
	ErrBadRequest          = errors.New("bad request")
)
