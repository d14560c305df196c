package apperrors

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind names a category of failure condition a unit can declare and handle.
type Kind int

// Failure condition kinds. KindNone is only reported for nil errors.
const (
	KindNone Kind = iota
	KindInvalidValue
	KindTypeMismatch
	KindDivisionByZero
	KindIndexOutOfRange
	KindKeyNotFound
	KindFileNotFound
	KindRuntime
)

var kindNames = [...]string{
	KindNone:            "None",
	KindInvalidValue:    "InvalidValue",
	KindTypeMismatch:    "TypeMismatch",
	KindDivisionByZero:  "DivisionByZero",
	KindIndexOutOfRange: "IndexOutOfRange",
	KindKeyNotFound:     "KeyNotFound",
	KindFileNotFound:    "FileNotFound",
	KindRuntime:         "Runtime",
}

// String returns the display name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Sentinels, one per kind. Every Condition matches the sentinel of its kind
// under errors.Is.
var (
	ErrInvalidValue    = &Condition{Kind: KindInvalidValue, Message: "invalid value"}
	ErrTypeMismatch    = &Condition{Kind: KindTypeMismatch, Message: "type mismatch"}
	ErrDivisionByZero  = &Condition{Kind: KindDivisionByZero, Message: "division by zero"}
	ErrIndexOutOfRange = &Condition{Kind: KindIndexOutOfRange, Message: "index out of range"}
	ErrKeyNotFound     = &Condition{Kind: KindKeyNotFound, Message: "key not found"}
	ErrFileNotFound    = &Condition{Kind: KindFileNotFound, Message: "file not found"}
	ErrRuntime         = &Condition{Kind: KindRuntime, Message: "runtime failure"}
)

// Condition is a failure of a known kind. Message is what the failing
// operation reports; Cause, when set, is the lower-level error that
// triggered it.
type Condition struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error returns the message, falling back to the cause and then to the kind.
func (c *Condition) Error() string {
	switch {
	case c.Message != "":
		return c.Message
	case c.Cause != nil:
		return c.Cause.Error()
	default:
		return c.Kind.String()
	}
}

// Unwrap returns the underlying cause.
func (c *Condition) Unwrap() error { return c.Cause }

// Is reports whether target is a Condition of the same kind. A FileNotFound
// condition also matches fs.ErrNotExist.
func (c *Condition) Is(target error) bool {
	if t, ok := target.(*Condition); ok {
		return t.Kind == c.Kind
	}
	return c.Kind == KindFileNotFound && target == fs.ErrNotExist
}

// Raise creates a condition of the given kind with a formatted message.
func Raise(kind Kind, format string, a ...any) error {
	return &Condition{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// Wrap attaches a kind to an existing error. The message is taken from the
// cause. Returns nil if cause is nil.
func Wrap(kind Kind, cause error) error {
	if cause == nil {
		return nil
	}
	return &Condition{Kind: kind, Cause: cause}
}

// KindOf returns the kind of the first condition found in err's chain.
// File-system "not exist" errors are reported as KindFileNotFound even when
// they were never wrapped in a Condition; any other error without a
// condition is KindRuntime.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var c *Condition
	if errors.As(err, &c) {
		return c.Kind
	}
	if errors.Is(err, fs.ErrNotExist) {
		return KindFileNotFound
	}
	return KindRuntime
}

// Matches reports whether err carries any of the given kinds. With no kinds
// it matches every non-nil error.
func Matches(err error, kinds ...Kind) bool {
	if err == nil {
		return false
	}
	if len(kinds) == 0 {
		return true
	}
	got := KindOf(err)
	for _, k := range kinds {
		if k == got {
			return true
		}
	}
	return false
}

// CatalogueEntry describes one well-known failure kind.
type CatalogueEntry struct {
	Kind        Kind
	Description string
}

// Catalogue lists the failure kinds with a short description of when each
// one occurs, in display order.
func Catalogue() []CatalogueEntry {
	return []CatalogueEntry{
		{KindInvalidValue, "Неправильное значение передано функции (например, попытка преобразовать строку в число)."},
		{KindTypeMismatch, "Попытка выполнить операцию между значениями несовместимых типов."},
		{KindDivisionByZero, "Деление на ноль."},
		{KindIndexOutOfRange, "Попытка обратиться к несуществующему элементу списка."},
		{KindKeyNotFound, "Попытка обратиться к несуществующему ключу в словаре."},
		{KindFileNotFound, "Попытка открыть файл, которого нет."},
		{KindRuntime, "Общая ошибка, которая возникает в процессе выполнения программы."},
	}
}
