package services

import (
	"errors"
	"fmt"
)

// Absence and inaccessibility are reported as the same outcome so that the
// existence of somebody else's entity is never revealed.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrSessionNotFound = errors.New("session not found")

	// ErrTaskNotAccessible is returned when a session references a task
	// the caller cannot reach. It is a client error, distinct from
	// ErrTaskNotFound on direct task reads.
	ErrTaskNotAccessible = errors.New("task does not exist or is not accessible")

	ErrEmailTaken         = errors.New("email is already in use")
	ErrUsernameTaken      = errors.New("username is already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError rejects input outside declared bounds before any store
// interaction.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
