package hotel

import (
	"errors"
	"fmt"
)

// ErrInconsistent marks a store whose contents break the one-booking-per-room rule.
var ErrInconsistent = errors.New("hotel: inconsistent booking records")

// ValidationError reports the first form field that failed validation.
type ValidationError struct {
	Field string
	Msg   string
}

// Error names the field and the reason.
func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
	}
	return fmt.Sprintf("invalid %s", e.Field)
}

// NotAvailableError is returned when every room in a class is taken.
type NotAvailableError struct {
	RoomClass string
}

// Error names the full room class.
func (e *NotAvailableError) Error() string {
	return fmt.Sprintf("no rooms available in %s", e.RoomClass)
}

// NotFoundError is returned when no active booking holds the room.
type NotFoundError struct {
	RoomNumber int
}

// Error names the empty room.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no guest found in room %d", e.RoomNumber)
}

// StorageError wraps failures reading or writing the record file.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

// Error reports the operation, the file and the cause.
func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotAvailable reports whether err is a NotAvailableError.
func IsNotAvailable(err error) bool {
	var target *NotAvailableError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}
