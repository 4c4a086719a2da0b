// Package errors provides the coded errors excalidocker reports to users.
//
// Every failure carries a machine-readable [Code] and a message:
//   - INVALID_*: input that cannot be used (wrong extension, malformed manifest)
//   - FILE_*: local file problems
//   - REMOTE_FETCH: downloading a manifest over HTTP failed
//   - DEPENDENCY_CYCLE: depends_on forms a cycle
//   - INTERNAL_ERROR: a bug
//
// Usage:
//
//	err := errors.New(errors.ErrCodeInvalidExtension, "file '%s' should be 'yaml' or 'yml'", path)
//	if errors.Is(err, errors.ErrCodeInvalidExtension) { ... }
//
//	err := errors.Wrap(errors.ErrCodeRemoteFetch, cause, "failed to read remote file '%s'", url)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidExtension Code = "INVALID_EXTENSION"
	ErrCodeInvalidManifest  Code = "INVALID_MANIFEST"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidInput     Code = "INVALID_INPUT"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeFileRead     Code = "FILE_READ"
	ErrCodeFileWrite    Code = "FILE_WRITE"

	ErrCodeRemoteFetch Code = "REMOTE_FETCH"

	ErrCodeDependencyCycle Code = "DEPENDENCY_CYCLE"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// hints suggest a next step for codes where one exists.
var hints = map[Code]string{
	ErrCodeInvalidExtension: "compose files must end in .yaml or .yml; config files in .yaml, .yml or .toml",
	ErrCodeInvalidManifest:  "check that the file has a top-level 'services' mapping",
	ErrCodeInvalidConfig:    "run 'excalidocker --show-config' to print a valid configuration",
	ErrCodeRemoteFetch:      "check the URL, or retry later; 'excalidocker cache list' shows cached copies",
	ErrCodeDependencyCycle:  "run 'excalidocker graph' on the same file to see the cycle",
	ErrCodeInternal:         "please report this with the compose file that triggered it",
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message shown on the terminal: the message and,
// when present, the cause's details, without the code prefix. Errors that
// are not *Error are returned as-is.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s. Details: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Hint returns a suggested next step for err, or "" if there is none.
func Hint(err error) string {
	return hints[GetCode(err)]
}
