package logger

import "errors"

// Common errors returned by the logger package.
var (
	// ErrInvalidLevel is returned when an invalid logging level is provided.
	ErrInvalidLevel = errors.New("invalid logging level")
	// ErrInvalidEncoding is returned when an invalid log encoding format is provided.
	ErrInvalidEncoding = errors.New("invalid log encoding format")
	// ErrInvalidOutput is returned when the output stream is neither stdout nor stderr.
	ErrInvalidOutput = errors.New("invalid log output")
)
