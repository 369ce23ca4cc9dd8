// Package common defines the sentinel errors shared by the storage, service
// and console layers of StudentVerse. Callers should use errors.Is to match
// these values; every error returned by a store wraps exactly one of them.
package common

import "errors"

var (
	// Input errors. Recovered locally by re-prompting.
	ErrValidation = errors.New("validation error")

	// Registration errors.
	ErrAlreadyExists = errors.New("already exists")

	// Authentication errors. Unknown user and wrong password are reported
	// identically.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Referential integrity errors (journal append for a missing user).
	ErrNotFound = errors.New("not found")

	// Storage errors. Busy is retryable, unavailable is fatal for the
	// current operation.
	ErrStorageBusy        = errors.New("storage busy")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
