package database

import (
	"errors"
	"fmt"
)

// ErrInitialization reports that the store could not be opened or that the
// base schema could not be created. The store latches it: once opening has
// failed, every later operation returns the same error instead of retrying.
var ErrInitialization = errors.New("store initialization failed")

// ValidationError reports a caller-supplied entity that fails a write
// precondition. It is returned before any statement executes, so the store
// is untouched.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s %s", e.Entity, e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
