package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors returned by the services. The HTTP layer is the only
// place these are translated to status codes.
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrNotTaskOwner       = errors.New("task belongs to another user")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found")
)

// ValidationError reports malformed input with a message per offending
// field, so handlers can return structured detail alongside the 400.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
