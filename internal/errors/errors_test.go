// Package apperrors provides tests for application error types.
package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("unknown unit %q", "parse-hex"),
			expected: `unknown unit "parse-hex"`,
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	var err error = ValidationError{Field: "max-attempts", Message: "must be non-negative"}
	if got, want := err.Error(), `validation error for "max-attempts": must be non-negative`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	wrapped := WrapError(err, "config check failed")
	var validationErr ValidationError
	if !errors.As(wrapped, &validationErr) {
		t.Fatal("errors.As should find ValidationError through WrapError")
	}
	if validationErr.Field != "max-attempts" {
		t.Errorf("expected Field %q, got %q", "max-attempts", validationErr.Field)
	}
}

func TestUnhandledError(t *testing.T) {
	t.Parallel()
	cause := Raise(KindInvalidValue, "Возраст не может быть отрицательным!")
	err := UnhandledError{Unit: "negative-age", Cause: cause}

	if got, want := err.Error(), "negative-age: Возраст не может быть отрицательным!"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !errors.Is(err, ErrInvalidValue) {
		t.Error("errors.Is should find the condition kind through UnhandledError")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the original cause")
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	err := TimeoutError{Operation: "run", Limit: 30 * time.Second}
	if got, want := err.Error(), `operation "run" timed out after 30s`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		original    error
		format      string
		args        []any
		expectedMsg string
		expectNil   bool
		checkIs     error
	}{
		{
			name:        "wraps error with context",
			original:    errors.New("file not found"),
			format:      "failed to load config",
			expectedMsg: "failed to load config: file not found",
		},
		{
			name:        "preserves error chain",
			original:    context.DeadlineExceeded,
			format:      "operation timed out",
			expectedMsg: "operation timed out: context deadline exceeded",
			checkIs:     context.DeadlineExceeded,
		},
		{
			name:      "returns nil for nil error",
			original:  nil,
			format:    "some context",
			expectNil: true,
		},
		{
			name:        "supports format arguments",
			original:    ErrKeyNotFound,
			format:      "lookup %q",
			args:        []any{"age"},
			expectedMsg: `lookup "age": key not found`,
			checkIs:     ErrKeyNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := WrapError(tt.original, tt.format, tt.args...)

			if tt.expectNil {
				if wrapped != nil {
					t.Error("WrapError(nil, ...) should return nil")
				}
				return
			}
			if wrapped == nil {
				t.Fatal("wrapped error should not be nil")
			}
			if wrapped.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, wrapped.Error())
			}
			if tt.checkIs != nil && !errors.Is(wrapped, tt.checkIs) {
				t.Errorf("wrapped error should preserve %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped context.Canceled", WrapError(context.Canceled, "run canceled"), true},
		{"regular error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.expected {
				t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"validation", ValidationError{Field: "theme", Message: "unknown"}, ExitErrorConfig},
		{"timeout", TimeoutError{Operation: "run", Limit: time.Second}, ExitErrorTimeout},
		{"deadline", WrapError(context.DeadlineExceeded, "run"), ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"unhandled", UnhandledError{Unit: "negative-age", Cause: ErrInvalidValue}, ExitErrorUnhandled},
		{"joined unhandled", JoinUnhandled([]error{
			UnhandledError{Unit: "a", Cause: ErrRuntime},
			UnhandledError{Unit: "b", Cause: ErrRuntime},
		}), ExitErrorUnhandled},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestJoinUnhandled(t *testing.T) {
	t.Parallel()
	if JoinUnhandled(nil) != nil {
		t.Error("JoinUnhandled(nil) should return nil")
	}

	single := UnhandledError{Unit: "a", Cause: ErrRuntime}
	if got := JoinUnhandled([]error{single}); got != error(single) {
		t.Errorf("single error should pass through unchanged, got %v", got)
	}

	joined := JoinUnhandled([]error{
		UnhandledError{Unit: "negative-age", Cause: ErrInvalidValue},
		UnhandledError{Unit: "read-number", Cause: ErrRuntime},
	})
	want := "2 units failed (negative-age, read-number): negative-age: invalid value\nread-number: runtime failure"
	if joined.Error() != want {
		t.Errorf("expected %q, got %q", want, joined.Error())
	}
	if !errors.Is(joined, ErrInvalidValue) || !errors.Is(joined, ErrRuntime) {
		t.Error("joined error should expose every cause")
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"ExitSuccess":        ExitSuccess,
		"ExitErrorGeneric":   ExitErrorGeneric,
		"ExitErrorTimeout":   ExitErrorTimeout,
		"ExitErrorUnhandled": ExitErrorUnhandled,
		"ExitErrorConfig":    ExitErrorConfig,
		"ExitErrorCanceled":  ExitErrorCanceled,
	}

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess should be 0, got %d", ExitSuccess)
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}

	seen := make(map[int]string)
	for name, code := range codes {
		if existing, ok := seen[code]; ok {
			t.Errorf("duplicate exit code %d: %s and %s", code, existing, name)
		}
		seen[code] = name
	}
}

func TestConditionIs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same kind", Raise(KindDivisionByZero, "division by zero"), ErrDivisionByZero, true},
		{"different kind", Raise(KindDivisionByZero, "division by zero"), ErrInvalidValue, false},
		{"wrapped with fmt", fmt.Errorf("step: %w", Raise(KindKeyNotFound, "age")), ErrKeyNotFound, true},
		{"file condition matches fs.ErrNotExist", Wrap(KindFileNotFound, errors.New("open x")), fs.ErrNotExist, true},
		{"other condition does not match fs.ErrNotExist", ErrInvalidValue, fs.ErrNotExist, false},
		{"cause is reachable", Wrap(KindInvalidValue, context.Canceled), context.Canceled, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.want)
			}
		})
	}
}

func TestConditionError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  *Condition
		want string
	}{
		{"message wins", &Condition{Kind: KindRuntime, Message: "msg", Cause: errors.New("cause")}, "msg"},
		{"falls back to cause", &Condition{Kind: KindRuntime, Cause: errors.New("cause")}, "cause"},
		{"falls back to kind", &Condition{Kind: KindTypeMismatch}, "TypeMismatch"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	t.Parallel()
	if Wrap(KindRuntime, nil) != nil {
		t.Error("Wrap(kind, nil) should return nil")
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()
	_, openErr := os.Open("definitely/not/here.txt")
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindNone},
		{"plain error", errors.New("plain"), KindRuntime},
		{"condition", Raise(KindTypeMismatch, "x"), KindTypeMismatch},
		{"wrapped condition", WrapError(ErrIndexOutOfRange, "at 5"), KindIndexOutOfRange},
		{"raw fs error", openErr, KindFileNotFound},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	t.Parallel()
	err := Raise(KindDivisionByZero, "division by zero")
	if !Matches(err) {
		t.Error("Matches with no kinds should accept any error")
	}
	if !Matches(err, KindInvalidValue, KindDivisionByZero) {
		t.Error("Matches should accept a listed kind")
	}
	if Matches(err, KindInvalidValue) {
		t.Error("Matches should reject unlisted kinds")
	}
	if Matches(nil) {
		t.Error("Matches should reject nil")
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()
	if KindFileNotFound.String() != "FileNotFound" {
		t.Errorf("unexpected name %q", KindFileNotFound.String())
	}
	if Kind(99).String() != "Kind(99)" {
		t.Errorf("unexpected name for unknown kind: %q", Kind(99).String())
	}
}

func TestCatalogueCoversEveryKind(t *testing.T) {
	t.Parallel()
	seen := map[Kind]bool{}
	for _, e := range Catalogue() {
		if e.Description == "" {
			t.Errorf("%v has no description", e.Kind)
		}
		seen[e.Kind] = true
	}
	for k := KindInvalidValue; k <= KindRuntime; k++ {
		if !seen[k] {
			t.Errorf("%v missing from catalogue", k)
		}
	}
}
