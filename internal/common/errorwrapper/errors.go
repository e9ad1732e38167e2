package errorwrapper

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Common error types used across the application
var (
	// ErrFetchTimeout indicates the commit source did not answer within the fetch timeout
	ErrFetchTimeout = errors.New("fetch timed out")
	// ErrFetch indicates the commit source failed while listing commits
	ErrFetch = errors.New("fetch failed")
	// ErrPermissionDenied indicates the notification permission was refused
	ErrPermissionDenied = errors.New("notification permission denied")
	// ErrFolderLookup indicates a per-folder change lookup failed
	ErrFolderLookup = errors.New("folder lookup failed")
	// ErrInvalidConfiguration indicates configuration issues
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrGitOperationFailed indicates a git command exited with an error
	ErrGitOperationFailed = errors.New("git operation failed")
	// ErrStorage indicates the key-value store could not be read or written
	ErrStorage = errors.New("storage failure")
	// ErrEngineNotStarted indicates an operation that needs a running engine
	ErrEngineNotStarted = errors.New("engine not started")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: <nil>", message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// Unwrap lets callers match any validation failure against ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// GitError carries the failing git invocation and whatever it wrote to stderr.
type GitError struct {
	Args    []string
	Stderr  string
	Wrapped error
}

func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed", strings.Join(e.Args, " "))
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	if e.Wrapped != nil {
		msg += fmt.Sprintf(" (%v)", e.Wrapped)
	}
	return msg
}

// Is reports GitError as ErrGitOperationFailed.
func (e *GitError) Is(target error) bool {
	return target == ErrGitOperationFailed
}

func (e *GitError) Unwrap() error {
	return e.Wrapped
}

// NewGitError creates a new git error
func NewGitError(args []string, stderr string, wrapped error) *GitError {
	return &GitError{
		Args:    args,
		Stderr:  strings.TrimSpace(stderr),
		Wrapped: wrapped,
	}
}

// IsCancellation reports whether err stems from a cancelled context.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}
