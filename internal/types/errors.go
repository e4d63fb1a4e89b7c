package types

import "errors"

var (
	// ErrInvalidInput is returned for zero-length frames, zero smoothing windows and malformed formats.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInsufficientData is returned when less than one full second of audio is available.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrNumericDegenerate is returned when NaN or Inf values reach the spectral stages.
	ErrNumericDegenerate = errors.New("numeric degenerate")
)
