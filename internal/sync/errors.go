package sync

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the engine and registry. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrUnknownEntity is returned when an entity-type name is not present
	// in the registry. The whole request is rejected before any engine work.
	ErrUnknownEntity = errors.New("unknown entity type")

	// ErrRecordNotFound is returned by Store.Get when no row with the
	// requested id exists.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateAdapter is returned by NewRegistry when two adapters
	// claim the same entity-type name.
	ErrDuplicateAdapter = errors.New("duplicate adapter name")

	// ErrPersistence wraps storage failures of a push batch. The unit of
	// work is rolled back and no partial result is returned.
	ErrPersistence = errors.New("sync persistence failure")
)

// ValidationError reports a per-record decode failure. It carries the
// offending field and the reason so that the record can be routed to the
// conflicts set with an attached explanation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validation constructs a *ValidationError for the given field.
func Validation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
