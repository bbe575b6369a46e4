// Package services defines the quote repository that sits between the store
// and the presentation layer. This file centralizes the repository's error
// values so callers can branch with errors.Is.
//
// Write operations always surface one of these (possibly wrapped with the
// underlying cause). Read and stream faults are logged and absorbed instead.
package services

import "errors"

var (
	// ErrNotFound indicates that no quote exists with the requested id.
	ErrNotFound = errors.New("quote not found")

	// ErrValidation is returned when a quote or category name fails input
	// rules (blank text, blank category name).
	ErrValidation = errors.New("invalid input")

	// ErrTimeout is returned when a bounded operation did not finish within
	// the repository timeout.
	ErrTimeout = errors.New("operation timed out")

	// ErrStorage wraps any other failure reported by the store.
	ErrStorage = errors.New("storage failure")
)
