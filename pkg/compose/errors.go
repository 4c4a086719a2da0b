package compose

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the manifest has no content.
	ErrEmptyInput = errors.New("compose manifest is empty")

	// ErrInvalidYAML is returned when the manifest is not valid YAML or its
	// root is not a mapping.
	ErrInvalidYAML = errors.New("invalid YAML syntax")

	// ErrNoServices is returned when the manifest lacks a 'services' mapping.
	ErrNoServices = errors.New("failed to get 'services' attribute")

	// ErrInvalidService is returned when a service entry has the wrong shape.
	ErrInvalidService = errors.New("invalid service definition")
)

// ParseError wraps errors with context about where parsing failed.
type ParseError struct {
	Field   string // e.g., "services.web.ports[0]"
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(field, message string, err error) *ParseError {
	return &ParseError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
