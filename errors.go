package expiringvalue

import (
	"errors"
	"fmt"
)

// ErrDisposed is returned by every operation on a disposed Value.
var ErrDisposed = errors.New("expiringvalue: value is disposed")

// UpdateError wraps an error returned (or a panic raised) by the updater.
type UpdateError struct {
	Err error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("expiringvalue: update failed: %v", e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}
