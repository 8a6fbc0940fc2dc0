package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails validation (missing required
// field, coordinate out of range, inverted envelope).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")
