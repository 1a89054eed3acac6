package hitter

import "errors"

// Sentinel errors returned by DeriveRates. Callers at the request
// surface map these to the wire-level error taxonomy (see
// internal/optimizer/errors.go).
var (
	ErrInvalidStats = errors.New("invalid stats")
	ErrRateOverflow = errors.New("rate overflow")
)
