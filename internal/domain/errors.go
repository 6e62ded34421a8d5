package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a referenced transaction, payout request, book or
	// user that does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrStaleStatus marks a lost compare-and-swap race: the record was no
	// longer in the expected status when the conditional update ran.
	ErrStaleStatus = errors.New("record status changed concurrently")
)

// ValidationError is malformed or semantically invalid input. It is always
// surfaced as a rejected operation with a message, never a crash.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
