package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidCredentials covers unknown email, inactive account, and
	// password mismatch alike so the response never says which it was.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrForbidden is returned when an authenticated caller targets a record
	// owned by someone else.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports per-field input problems. Fields maps each
// offending field name to a human-readable message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
