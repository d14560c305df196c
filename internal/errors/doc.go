// Package apperrors defines the failure conditions the demonstration units
// raise and handle, plus the structured application errors and exit codes
// of the errdemo command.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types implement the Unwrap() method to support errors.Is() and errors.As().
// A Condition additionally matches the sentinel of its Kind, so callers can
// write errors.Is(err, ErrDivisionByZero) without knowing the concrete type.
package apperrors
