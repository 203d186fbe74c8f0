package config

import (
	"errors"
	"fmt"
)

// ErrConfigInvalid is matched by every ValidationError.
var ErrConfigInvalid = errors.New("invalid configuration")

// ValidationError reports which section failed validation.
type ValidationError struct {
	Section string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s: %v", e.Section, e.Err)
}

// Unwrap returns the section error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports ErrConfigInvalid as a match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrConfigInvalid
}

// LoadError represents an error decoding configuration
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load config: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
