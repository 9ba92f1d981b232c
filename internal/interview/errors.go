package interview

import "errors"

var (
	// ErrUnknownQuestion is returned when a caller references a question id
	// that is not in the catalog.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrNotStarted is returned when an operation requires a started session.
	ErrNotStarted = errors.New("interview not started")
)
