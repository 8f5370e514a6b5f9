package domain

import "errors"

// Error taxonomy shared across stores, managers and the HTTP layer.
// Callers match with errors.Is; wrapping sites add context with fmt.Errorf %w.
var (
	// ErrNotFound signals an unknown record ID.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists signals a duplicate: signup with a taken email,
	// or a second live bookmark for the same (user, entity, kind).
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidCredentials signals a failed login. Deliberately does not
	// distinguish unknown email from wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation signals a malformed input field.
	ErrValidation = errors.New("validation failed")

	// ErrExternalService signals a summary collaborator failure.
	// Never retried automatically.
	ErrExternalService = errors.New("external service failed")
)
