package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrFetchFailure       = errors.New("fetch failure")
	ErrWordNotFound       = errors.New("word not found")
	ErrInvalidResultShape = errors.New("invalid result shape")
	ErrEmptyWord          = errors.New("empty word")
)

// FetchError reports which lookup source failed.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() []error { return []error{ErrFetchFailure, e.Err} }

// NewFetchError wraps err as a failure of the given source.
func NewFetchError(source string, err error) *FetchError {
	return &FetchError{Source: source, Err: err}
}

// MissError converts a miss reason into its sentinel, nil for MissNone.
func MissError(reason MissReason) error {
	switch reason {
	case MissNotFound:
		return ErrWordNotFound
	case MissInvalidShape:
		return ErrInvalidResultShape
	default:
		return nil
	}
}
