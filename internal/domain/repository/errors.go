package repository

import "errors"

// Storage outcomes shared by all repositories. Not-found is a distinct
// outcome, never folded into a generic error.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
