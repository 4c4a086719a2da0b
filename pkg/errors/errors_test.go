package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		err  *Error
		want string
	}{
		{New(ErrCodeInvalidExtension, "file '%s' has unsupported extension", "a.json"),
			"INVALID_EXTENSION: file 'a.json' has unsupported extension"},
		{Wrap(ErrCodeRemoteFetch, cause, "failed to read remote file '%s'", "https://x/c.yaml"),
			"REMOTE_FETCH: failed to read remote file 'https://x/c.yaml': connection refused"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}

	wrapped := tests[1].err
	if !errors.Is(wrapped, cause) || errors.Unwrap(wrapped) != cause {
		t.Error("Wrap should keep the cause reachable through errors.Is and Unwrap")
	}
}

func TestCodes(t *testing.T) {
	cycle := New(ErrCodeDependencyCycle, "services in 'a.yaml' depend on each other")
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"direct", cycle, ErrCodeDependencyCycle},
		{"outermost wins", Wrap(ErrCodeInternal, cycle, "layout"), ErrCodeInternal},
		{"through fmt wrapping", fmt.Errorf("convert: %w", cycle), ErrCodeDependencyCycle},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
			if tt.want != "" && !Is(tt.err, tt.want) {
				t.Errorf("Is(err, %q) = false", tt.want)
			}
			if Is(tt.err, ErrCodeFileWrite) {
				t.Error("Is(err, FILE_WRITE) = true")
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "wrapped cause",
			err:      Wrap(ErrCodeFileNotFound, errors.New("no such file or directory"), "failed to open 'a.yaml'"),
			expected: "failed to open 'a.yaml'. Details: no such file or directory",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{New(ErrCodeDependencyCycle, "cycle"), "excalidocker graph"},
		{Wrap(ErrCodeRemoteFetch, errors.New("timeout"), "fetch"), "cache list"},
		{fmt.Errorf("run: %w", New(ErrCodeInvalidConfig, "bad")), "--show-config"},
	}
	for _, tt := range tests {
		if got := Hint(tt.err); !strings.Contains(got, tt.want) {
			t.Errorf("Hint(%v) = %q, want it to mention %q", tt.err, got, tt.want)
		}
	}

	for _, err := range []error{New(ErrCodeFileNotFound, "missing"), errors.New("plain")} {
		if got := Hint(err); got != "" {
			t.Errorf("Hint(%v) = %q, want none", err, got)
		}
	}
}
