package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across the stores and handlers.
var (
	// ErrNotFound covers unknown record ids and missing or expired
	// sessions. A missing session must look the same as one that
	// never existed.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials is deliberately generic: it is returned
	// for unknown identifiers and wrong passwords alike, so a caller
	// cannot probe which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStoreUnavailable means the backing store could not be
	// reached. Public routes degrade; routes behind authentication
	// fail closed.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// DuplicateError reports a unique-constraint conflict on user creation.
type DuplicateError struct {
	Field string // "username" or "email"
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("a user with this %s already exists", e.Field)
}

// InvalidStatusError reports a status value outside the record kind's set.
type InvalidStatusError struct {
	Kind   string
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid %s status %q, must be one of: %s",
		e.Kind, e.Status, strings.Join(StatusesFor(e.Kind), ", "))
}

// FieldError is a single user-correctable validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every violation in a payload rather than
// stopping at the first.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, fe := range ve {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// Messages returns just the human-readable messages, for form replies.
func (ve ValidationErrors) Messages() []string {
	msgs := make([]string, len(ve))
	for i, fe := range ve {
		msgs[i] = fe.Message
	}
	return msgs
}

// Has reports whether the collection contains a violation for field.
func (ve ValidationErrors) Has(field string) bool {
	for _, fe := range ve {
		if fe.Field == field {
			return true
		}
	}
	return false
}
