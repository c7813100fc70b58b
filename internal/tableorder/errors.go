package tableorder

import (
	"errors"
	"fmt"
)

// ErrSubmissionInProgress is returned when a submit is requested while a
// previous submission still has items in flight.
var ErrSubmissionInProgress = errors.New("submission already in progress")

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError signals an operation referencing an item code that is not in
// the collection. It points at a state desync, not at user input.
type NotFoundError struct {
	Code int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("menu item %d not found", e.Code)
}

// FetchError wraps a failed menu exchange.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("menu fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SubmissionError describes a single item's failed submission.
type SubmissionError struct {
	Code   int
	Name   string
	Reason string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("could not submit %s (code %d): %s", e.Name, e.Code, e.Reason)
}
