package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess        = 0   // Indicates successful execution.
	ExitErrorGeneric   = 1   // Indicates a generic error.
	ExitErrorTimeout   = 2   // Indicates the run timed out.
	ExitErrorUnhandled = 3   // Indicates a unit failed with an undeclared condition.
	ExitErrorConfig    = 4   // Indicates a configuration error.
	ExitErrorCanceled  = 130 // Indicates the run was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// UnhandledError reports a unit whose failure matched none of its declared
// handlers. The run stops at such a unit unless it was told to keep going.
type UnhandledError struct {
	// Unit is the ID of the unit that failed.
	Unit string
	// Cause is the failure that propagated out of the unit.
	Cause error
}

// Error returns the unit ID followed by the propagated failure.
func (e UnhandledError) Error() string {
	return fmt.Sprintf("%s: %v", e.Unit, e.Cause)
}

// Unwrap returns the propagated failure.
func (e UnhandledError) Unwrap() error { return e.Cause }

// TimeoutError represents a run that exceeded its deadline.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error returned by a run to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		configErr     ConfigError
		validationErr ValidationError
		timeoutErr    TimeoutError
		unhandledErr  UnhandledError
	)
	switch {
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &unhandledErr):
		return ExitErrorUnhandled
	default:
		return ExitErrorGeneric
	}
}

// JoinUnhandled combines the failures of several units into one error that
// still satisfies errors.As for UnhandledError. It returns nil for an empty
// slice and the single error unchanged for a slice of one.
func JoinUnhandled(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	units := make([]string, 0, len(errs))
	for _, err := range errs {
		var u UnhandledError
		if errors.As(err, &u) {
			units = append(units, u.Unit)
		}
	}
	return fmt.Errorf("%d units failed (%s): %w", len(errs), strings.Join(units, ", "), errors.Join(errs...))
}
