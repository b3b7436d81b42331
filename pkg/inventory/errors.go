package inventory

import "errors"

// ErrNotFound is returned when an item is missing.
var ErrNotFound = errors.New("inventory item not found")

var (
	errQueueBusy = errors.New("inventory queue is busy")
	errClosed    = errors.New("inventory service is closed")
)

// validationError reports input the catalog or the item rules reject. cause
// is set when another package did the rejecting.
type validationError struct {
	message string
	cause   error
}

func (e validationError) Error() string { return e.message }

func (e validationError) Unwrap() error { return e.cause }

// newValidationError rejects input for a rule the inventory owns.
func newValidationError(msg string) error {
	return validationError{message: msg}
}

// wrapValidation marks err as rejected input while keeping it in the chain.
func wrapValidation(err error) error {
	return validationError{message: err.Error(), cause: err}
}

// IsValidation separates rejected input from lookup and queue failures.
func IsValidation(err error) bool {
	var v validationError
	return errors.As(err, &v)
}
