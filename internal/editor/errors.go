// Package editor implements the inline editing model: per-field display/edit
// state, the admin mode switch and the list operations that mutate draft slots.
package editor

import "errors"

var (
	// ErrNotAdmin is returned when a mutation is attempted outside admin mode.
	ErrNotAdmin = errors.New("admin mode required")

	// ErrNotEditing is returned when a field receives input while displayed.
	ErrNotEditing = errors.New("field is not in edit mode")

	// ErrConfirmationRequired is returned by deletes that were not confirmed.
	ErrConfirmationRequired = errors.New("delete requires confirmation")

	// ErrRecordNotFound is returned when an update addresses an id that is not in the list.
	ErrRecordNotFound = errors.New("record not found")

	// ErrUnknownField is returned for a field name the record does not have.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidAccessCode is returned by a failed admin login.
	ErrInvalidAccessCode = errors.New("invalid access code")
)
