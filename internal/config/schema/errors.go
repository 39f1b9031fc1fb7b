package schema

import (
	"errors"
	"fmt"
)

// Errors returned by schema validation.
var (
	// ErrUnknownKey indicates a write to a key the schema does not declare.
	ErrUnknownKey = errors.New("unknown configuration key")

	// ErrTypeMismatch indicates a value whose type does not match the key's
	// declared type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// WriteError describes a rejected configuration write. It matches
// ErrUnknownKey when the key is not declared, and ErrTypeMismatch when the
// value's type is wrong.
type WriteError struct {
	// Key is the configuration key that was written.
	Key string
	// Expected is the declared type name, or "" for an unknown key.
	Expected string
	// Actual is the type name of the rejected value.
	Actual string
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("unknown configuration key %q", e.Key)
	}
	return fmt.Sprintf("invalid write to %q: expected %s, got %s", e.Key, e.Expected, e.Actual)
}

// Is implements error matching for WriteError.
func (e *WriteError) Is(target error) bool {
	if e.Expected == "" {
		return target == ErrUnknownKey
	}
	return target == ErrTypeMismatch
}
