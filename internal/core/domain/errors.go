package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("not authenticated")
	ErrConflict           = errors.New("account already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrAuthInProgress     = errors.New("another authentication request is in progress")
	ErrForbidden          = errors.New("access forbidden")

	ErrTransport = errors.New("backend unreachable")
	ErrBackend   = errors.New("backend error")

	ErrListUnavailable = errors.New("session list unavailable")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFull     = errors.New("session is full")
	ErrAlreadyEnrolled = errors.New("already enrolled in session")
	ErrJoinInFlight    = errors.New("join already in progress for session")
	ErrJoinRejected    = errors.New("join rejected by backend, try again")

	ErrCorruptProjection = errors.New("corrupt persisted identity")
)

// ValidationError reports field-level problems with a submission.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError from field → message pairs.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// IsValidation reports whether err carries field-level validation errors.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
