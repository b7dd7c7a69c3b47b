package challenge

import "errors"

var (
	// ErrEntryTooShort indicates the submission text was below the minimum length.
	ErrEntryTooShort = errors.New("entry text is too short")
	// ErrAlreadySubmittedToday indicates an entry already exists for the current calendar day.
	ErrAlreadySubmittedToday = errors.New("an entry was already submitted today")
	// ErrStateNotFound indicates no persisted state exists for the user.
	ErrStateNotFound = errors.New("challenge state not found")
	// ErrInvalidSnapshot indicates an imported snapshot failed shape validation.
	ErrInvalidSnapshot = errors.New("invalid challenge snapshot")
	// ErrMissingUserID indicates a required user id was absent.
	ErrMissingUserID = errors.New("user id is required")
)
