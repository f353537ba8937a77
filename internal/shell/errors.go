package shell

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy is returned when an operation of the same kind is already running.
	ErrBusy = errors.New("another request is already in progress, please wait")

	// ErrCanceled is returned by a generation whose token was canceled. Its result
	// has been discarded.
	ErrCanceled = errors.New("generation canceled")

	// ErrNoPlan is returned when a visual is requested before any plan exists.
	ErrNoPlan = errors.New("no marketing plan yet\n💡 Generate content for a product first")

	// ErrNotFound is returned when a history id does not exist.
	ErrNotFound = errors.New("history item not found")
)

// ValidationError reports unusable user input. Nothing changes when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ErrEmptyInput is returned by Submit when neither a link nor a photo is given.
var ErrEmptyInput = &ValidationError{
	Field:   "input",
	Message: "enter a product link or upload a product photo",
}
