package demo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	apperrors "github.com/agbru/errdemo/internal/errors"
)

// ParseInt parses s as a base-10 integer. A malformed literal is an
// InvalidValue condition wrapping the *strconv.NumError.
func ParseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.KindInvalidValue, err)
	}
	return n, nil
}

// Divide returns a / b, or a DivisionByZero condition when b is zero.
func Divide(a, b int) (int, error) {
	if b == 0 {
		return 0, apperrors.Raise(apperrors.KindDivisionByZero, "division by zero")
	}
	return a / b, nil
}

// Add sums two dynamically typed operands. Integers and floats mix freely,
// strings concatenate with strings; any other pairing is a TypeMismatch.
func Add(a, b any) (any, error) {
	switch x := a.(type) {
	case int:
		switch y := b.(type) {
		case int:
			return x + y, nil
		case float64:
			return float64(x) + y, nil
		}
	case float64:
		switch y := b.(type) {
		case int:
			return x + float64(y), nil
		case float64:
			return x + y, nil
		}
	case string:
		if y, ok := b.(string); ok {
			return x + y, nil
		}
	}
	return nil, apperrors.Raise(apperrors.KindTypeMismatch, "cannot add %T and %T", a, b)
}

// Index returns list[i]. The lookup is a plain slice index; the runtime
// panic for a bad index is recovered and reported as IndexOutOfRange.
func Index(list []int, i int) (v int, err error) {
	err = apperrors.Guard(func() error {
		v = list[i]
		return nil
	})
	return v, err
}

// Lookup returns m[key], or a KeyNotFound condition when key is absent.
func Lookup(m map[string]string, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", apperrors.Raise(apperrors.KindKeyNotFound, "key %q not found", key)
	}
	return v, nil
}

// ReadFile returns the contents of path. A missing file is a FileNotFound
// condition that still matches fs.ErrNotExist; other I/O errors are wrapped
// as they are.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", apperrors.Wrap(apperrors.KindFileNotFound, err)
	default:
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
}

// NegativeAgeMessage is the message raised for an age below zero.
const NegativeAgeMessage = "Возраст не может быть отрицательным!"

// CheckAge signals an InvalidValue condition when age is negative.
func CheckAge(age int) error {
	if age < 0 {
		return apperrors.Raise(apperrors.KindInvalidValue, NegativeAgeMessage)
	}
	return nil
}
