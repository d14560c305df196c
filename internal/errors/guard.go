package apperrors

import (
	"fmt"
	"runtime"
	"strings"
)

// PanicError keeps the recovered value of a panic that was not a runtime
// error, so it can still be inspected after conversion.
type PanicError struct {
	Value any
}

// Error formats the recovered value.
func (e PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Guard runs fn and converts a panic into a condition. Runtime errors are
// classified by their message: integer division by zero becomes
// KindDivisionByZero, out-of-range indexing becomes KindIndexOutOfRange and
// anything else KindRuntime. Errors returned by fn pass through unchanged.
func Guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = FromPanic(r)
		}
	}()
	return fn()
}

// FromPanic converts a recovered panic value into a condition.
func FromPanic(r any) error {
	switch v := r.(type) {
	case runtime.Error:
		msg := v.Error()
		switch {
		case strings.Contains(msg, "divide by zero"):
			return &Condition{Kind: KindDivisionByZero, Message: "division by zero", Cause: v}
		case strings.Contains(msg, "index out of range"), strings.Contains(msg, "slice bounds out of range"):
			return &Condition{Kind: KindIndexOutOfRange, Cause: v}
		default:
			return &Condition{Kind: KindRuntime, Cause: v}
		}
	case *Condition:
		return v
	case error:
		return &Condition{Kind: KindRuntime, Cause: v}
	default:
		return &Condition{Kind: KindRuntime, Cause: PanicError{Value: r}}
	}
}
