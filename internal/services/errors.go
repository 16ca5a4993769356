package services

import (
	"errors"

	"taskhub/backend/internal/validation"
)

// ErrInvalidCredentials is returned on login when the email is unknown or
// the password does not match. Callers must not be able to tell which.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnauthenticated is returned when a presented bearer token is missing,
// malformed, or revoked.
var ErrUnauthenticated = errors.New("unauthenticated")

// ValidationError carries the per-field failure messages of a request.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
