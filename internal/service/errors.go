package service

import (
	"errors"
	"fmt"
)

var (
	// ErrEventNotFound is returned when the referenced event does not exist.
	ErrEventNotFound = errors.New("event not found")

	// ErrDuplicateRegistration is returned when an email is already
	// registered for the event.
	ErrDuplicateRegistration = errors.New("email already registered for this event")
)

// ValidationError reports a single rejected request field. Requests are
// rejected before any store mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
