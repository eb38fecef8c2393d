package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnavailable marks an external collaborator that is not configured
	// or not reachable; callers treat it as "no signal", not "wrong signal".
	ErrUnavailable = errors.New("unavailable")
)
