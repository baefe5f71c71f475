package handlers

import (
	"fmt"

	"github.com/pkg/errors"
)

// RecoverableError is an error that is explicitly marked as recoverable. Messages that fail
// with a recoverable error are requeued.
type RecoverableError struct {
	message string
}

// Error returns the error message for a RecoverableError.
func (e RecoverableError) Error() string {
	return e.message
}

// NewRecoverableError returns a new error that is marked as being recoverable.
func NewRecoverableError(formatString string, a ...interface{}) RecoverableError {
	return RecoverableError{message: fmt.Sprintf(formatString, a...)}
}

// UnrecoverableError is an error that we do not expect to be able to recover from. Messages
// that fail with an unrecoverable error are dropped.
type UnrecoverableError struct {
	message string
}

// Error returns the error message for an UnrecoverableError.
func (e UnrecoverableError) Error() string {
	return e.message
}

// NewUnrecoverableError returns a new error that is marked as being unrecoverable.
func NewUnrecoverableError(formatString string, a ...interface{}) UnrecoverableError {
	return UnrecoverableError{message: fmt.Sprintf(formatString, a...)}
}

// IsRecoverable returns true if retrying the message that produced err might succeed. Errors
// that aren't marked either way are treated as unrecoverable.
func IsRecoverable(err error) bool {
	_, ok := errors.Cause(err).(RecoverableError)
	return ok
}
