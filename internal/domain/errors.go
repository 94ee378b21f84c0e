// Package domain holds the entity packages of the ledger and the error types they share.
package domain

import (
	"errors"
	"fmt"
)

// InputError reports a caller-supplied value that failed validation.
type InputError struct {
	Field  string
	Reason string
}

// NewInputError builds an InputError for field.
func NewInputError(field, reason string) *InputError {
	return &InputError{Field: field, Reason: reason}
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsInputError reports whether err wraps an InputError.
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}
