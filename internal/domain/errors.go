package domain

import "errors"

var (
	// ErrInvalidInput signals a client fault (bad search text, malformed parameters).
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrBackendUnavailable signals that the search backend or record store could not be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrBackendError signals that the search backend or record store rejected a request.
	ErrBackendError = errors.New("backend error")
)
