package sheets

import "errors"

var (
	// ErrUnauthorized indicates the credential was rejected (expired or
	// revoked token). Callers treat this as a re-authentication signal,
	// not a fatal error.
	ErrUnauthorized = errors.New("spreadsheet credential rejected")

	// ErrNotFound indicates a spreadsheet, tab or range that was expected
	// to exist is missing.
	ErrNotFound = errors.New("spreadsheet resource not found")

	// ErrTransient indicates a network or server failure. No automatic
	// retry is performed; the user retries manually.
	ErrTransient = errors.New("transient spreadsheet error")
)
