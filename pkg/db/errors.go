package db

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by store implementations
var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrConcurrentModification indicates a conditional update failed because
	// another writer changed the record after the caller read it. The caller
	// should re-fetch and may retry.
	ErrConcurrentModification = errors.New("record was modified concurrently")

	// ErrDuplicateAcknowledgment indicates an acknowledgment already exists
	// for the (document, user) pair. Callers treat this as benign.
	ErrDuplicateAcknowledgment = errors.New("acknowledgment already recorded")
)

// InvalidTransitionError indicates an attempted state change that is not
// allowed from the record's current state. The message names both states so
// it can be surfaced to the user as-is.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s cannot move from %s to %s", e.Entity, e.From, e.To)
}

// ValidationError indicates a missing or malformed required field. Always
// recoverable by the caller correcting input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
