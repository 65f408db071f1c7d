package core

import "errors"

var (
	// ErrValidation classifies errors caused by malformed input. The caller may retry with corrected input.
	ErrValidation = errors.New("validation failed")

	// ErrStateConflict classifies errors caused by the current state not allowing an operation right now.
	ErrStateConflict = errors.New("state conflict")

	// ErrInvalidAmount is returned for non-positive, negative or non-numeric amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidIdentifier is returned for empty identifiers.
	ErrInvalidIdentifier = errors.New("identifier must be a non-empty string")
)

// ValidationError joins err with the ErrValidation class.
func ValidationError(err error) error {
	return errors.Join(ErrValidation, err)
}

// StateConflictError joins err with the ErrStateConflict class.
func StateConflictError(err error) error {
	return errors.Join(ErrStateConflict, err)
}

// IsValidation reports whether err belongs to the ErrValidation class.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsStateConflict reports whether err belongs to the ErrStateConflict class.
func IsStateConflict(err error) bool {
	return errors.Is(err, ErrStateConflict)
}
