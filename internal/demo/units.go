package demo

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iancoleman/strcase"

	apperrors "github.com/agbru/errdemo/internal/errors"
)

// Resolution and cleanup messages printed by the built-in units.
const (
	GenericReport       = "Получена ошибка: "
	CleanupMessage      = "Я блок, который выполняется всегда"
	NoFailureMessage    = "Исключения не появились, код работает отлично"
	InvalidValueText    = "Неправильное значение!"
	TypeMismatchText    = "Нельзя складывать строку и число!"
	IndexOutOfRangeText = "Выход за границы списка!"
	KeyNotFoundText     = "Такого ключа нет в словаре!"
	FileNotFoundText    = "Файл не найден!"
	malformedLiteral    = "10bc"
	dividend, divisor   = 10, 0
)

// Env carries the inputs that built-in units take from configuration.
type Env struct {
	// Age is checked by the negative-age unit.
	Age int
	// MissingFile is opened by the file-not-found unit.
	MissingFile string
	// Input feeds the read-number unit. Nil means os.Stdin.
	Input io.Reader
	// MaxAttempts bounds the read-number unit; zero is unlimited.
	MaxAttempts int
}

// Builtin returns the demonstration tour in its fixed order.
func Builtin(env Env) []Unit {
	in := env.Input
	if in == nil {
		in = os.Stdin
	}

	return []Unit{
		{
			Name:        "ParseInt",
			Description: "parse a malformed literal and catch the invalid value",
			Attempt:     parseLiteral,
			Handlers:    []Handler{ReportKind(apperrors.KindInvalidValue)},
		},
		{
			Name:        "ParseOrDivide",
			Description: "one handler declaring two kinds; the division fails first",
			Attempt:     divideThenParse,
			Handlers: []Handler{
				Report(GenericReport, apperrors.KindInvalidValue, apperrors.KindDivisionByZero),
			},
		},
		{
			Name:        "CatchAll",
			Description: "a handler that declares no kind catches any failure",
			Attempt:     divideThenParse,
			Handlers:    []Handler{Report(GenericReport)},
		},
		{
			Name:        "SeparateHandlers",
			Description: "one handler per kind; the first match wins",
			Attempt:     divideThenParse,
			Handlers: []Handler{
				ReportKind(apperrors.KindInvalidValue),
				ReportKind(apperrors.KindDivisionByZero),
			},
		},
		{
			Name:        "Cleanup",
			Description: "separate handlers plus a cleanup action that always runs",
			Attempt:     divideThenParse,
			Handlers: []Handler{
				ReportKind(apperrors.KindInvalidValue),
				ReportKind(apperrors.KindDivisionByZero),
			},
			Cleanup: CleanupMessage,
		},
		{
			Name:        "NoFailure",
			Description: "nothing fails, so the no-failure message and the cleanup run",
			Attempt: func(context.Context, io.Writer) error {
				// The literal is assigned but never converted.
				return nil
			},
			Handlers: []Handler{
				ReportKind(apperrors.KindInvalidValue),
				ReportKind(apperrors.KindDivisionByZero),
			},
			NoFailure: NoFailureMessage,
			Cleanup:   CleanupMessage,
		},
		{
			Name:        "InvalidValue",
			Description: "a string that is not a number",
			Attempt: func(_ context.Context, out io.Writer) error {
				n, err := ParseInt("abc")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, n)
				return nil
			},
			Handlers: []Handler{Catch(InvalidValueText, apperrors.KindInvalidValue)},
		},
		{
			Name:        "TypeMismatch",
			Description: "adding a string and a number",
			Attempt: func(_ context.Context, out io.Writer) error {
				sum, err := Add("5", 5)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, sum)
				return nil
			},
			Handlers: []Handler{Catch(TypeMismatchText, apperrors.KindTypeMismatch)},
		},
		{
			Name:        "IndexOutOfRange",
			Description: "reading past the end of a list",
			Attempt: func(_ context.Context, out io.Writer) error {
				v, err := Index([]int{1, 2, 3}, 5)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, v)
				return nil
			},
			Handlers: []Handler{Catch(IndexOutOfRangeText, apperrors.KindIndexOutOfRange)},
		},
		{
			Name:        "KeyNotFound",
			Description: "looking up a key the mapping does not have",
			Attempt: func(_ context.Context, out io.Writer) error {
				v, err := Lookup(map[string]string{"name": "Alice"}, "age")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, v)
				return nil
			},
			Handlers: []Handler{Catch(KeyNotFoundText, apperrors.KindKeyNotFound)},
		},
		{
			Name:        "FileNotFound",
			Description: "opening a file that does not exist",
			Attempt: func(context.Context, io.Writer) error {
				_, err := ReadFile(env.MissingFile)
				return err
			},
			Handlers: []Handler{Catch(FileNotFoundText, apperrors.KindFileNotFound)},
		},
		{
			Name:        "NegativeAge",
			Description: "signal a failure by hand when a precondition does not hold",
			Attempt: func(context.Context, io.Writer) error {
				return CheckAge(env.Age)
			},
		},
		{
			Name:        "ReadNumber",
			Description: "prompt until the input parses as an integer",
			Attempt: func(ctx context.Context, out io.Writer) error {
				_, err := ReadInt(ctx, in, out, env.MaxAttempts)
				return err
			},
		},
	}
}

// parseLiteral converts the malformed literal and prints the result.
func parseLiteral(_ context.Context, out io.Writer) error {
	n, err := ParseInt(malformedLiteral)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, n)
	return nil
}

// divideThenParse divides before it parses, so the division is the failure
// that surfaces.
func divideThenParse(_ context.Context, out io.Writer) error {
	if _, err := Divide(dividend, divisor); err != nil {
		return err
	}
	n, err := ParseInt(malformedLiteral)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, n)
	return nil
}

// Select returns the units whose IDs appear in names, in declaration order.
// Names are normalised to kebab case, so "ParseInt", "parse_int" and
// "parse-int" are equivalent. An empty names list selects every unit; an
// unknown name is a configuration error.
func Select(units []Unit, names []string) ([]Unit, error) {
	if len(names) == 0 {
		return units, nil
	}

	known := make(map[string]bool, len(units))
	for _, u := range units {
		known[u.ID()] = true
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		id := strcase.ToKebab(strings.TrimSpace(name))
		if !known[id] {
			return nil, apperrors.NewConfigError("unknown unit %q (run \"errdemo list\" to see unit IDs)", name)
		}
		wanted[id] = true
	}

	selected := make([]Unit, 0, len(wanted))
	for _, u := range units {
		if wanted[u.ID()] {
			selected = append(selected, u)
		}
	}
	return selected, nil
}
