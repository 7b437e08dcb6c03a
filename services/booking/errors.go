package booking

import (
	"errors"
	"fmt"
)

// Sentinel errors are the recoverable error kinds of the booking core. The
// handler layer maps each to a distinct HTTP status.
var (
	// ErrSlotConflict means the reservation lost a slot race at commit time.
	ErrSlotConflict = errors.New("requested time slot is no longer available")
	// ErrNotFound means a booking or service id did not resolve.
	ErrNotFound = errors.New("not found")
	// ErrStateTransition means a status change, cancel or delete violated the
	// booking state machine guard.
	ErrStateTransition = errors.New("state transition not allowed")
)

// ValidationError reports malformed or incomplete booking input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
