package demo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/iancoleman/strcase"

	apperrors "github.com/agbru/errdemo/internal/errors"
)

// AttemptFunc is the fallible operation of a unit. Anything it prints goes
// to out; a returned error (or a panic) is the unit's failure.
type AttemptFunc func(ctx context.Context, out io.Writer) error

// Unit is one self-contained demonstration.
type Unit struct {
	// Name is the CamelCase name; ID derives the kebab-case identifier.
	Name        string
	Description string
	Attempt     AttemptFunc
	// Handlers are consulted in order; the first match wins.
	Handlers []Handler
	// NoFailure is printed only when Attempt succeeds.
	NoFailure string
	// Cleanup is printed after every attempt, whatever the outcome.
	Cleanup string
}

// ID returns the unit's kebab-case identifier, e.g. "parse-or-divide".
func (u Unit) ID() string {
	return strcase.ToKebab(u.Name)
}

// Handler maps the failure kinds it declares to a resolution message.
type Handler struct {
	// Kinds lists the declared kinds. An empty list catches every failure.
	Kinds   []apperrors.Kind
	Respond func(err error) string
}

// Matches reports whether the handler declares err's kind.
func (h Handler) Matches(err error) bool {
	return apperrors.Matches(err, h.Kinds...)
}

// Catch returns a handler that prints a fixed message for the given kinds.
func Catch(message string, kinds ...apperrors.Kind) Handler {
	return Handler{
		Kinds:   kinds,
		Respond: func(error) string { return message },
	}
}

// Report returns a handler that prints prefix followed by the caught error.
func Report(prefix string, kinds ...apperrors.Kind) Handler {
	return Handler{
		Kinds:   kinds,
		Respond: func(err error) string { return prefix + err.Error() },
	}
}

// ReportKind returns a handler for a single kind whose message names that
// kind, e.g. "Получена ошибка DivisionByZero: division by zero".
func ReportKind(kind apperrors.Kind) Handler {
	return Report(fmt.Sprintf("Получена ошибка %s: ", kind), kind)
}

// Outcome is how a unit ended.
type Outcome int

const (
	// OutcomeOK means the attempt succeeded.
	OutcomeOK Outcome = iota
	// OutcomeHandled means the attempt failed and a handler caught it.
	OutcomeHandled
	// OutcomeUnhandled means the failure propagated out of the unit.
	OutcomeUnhandled
	// OutcomeSkipped means the unit never ran.
	OutcomeSkipped
)

// String returns the lower-case outcome name used in logs and metrics.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeHandled:
		return "handled"
	case OutcomeUnhandled:
		return "unhandled"
	case OutcomeSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result records how one unit ended.
type Result struct {
	Unit    string
	Outcome Outcome
	// Kind is the failure kind, KindNone when the attempt succeeded.
	Kind apperrors.Kind
	Err  error
	// Handler is the index of the handler that caught Err, or -1.
	Handler  int
	Duration time.Duration
}

// RunReport is the ordered list of results of one run.
type RunReport []Result

// Count returns how many results ended with outcome o.
func (r RunReport) Count(o Outcome) int {
	n := 0
	for _, res := range r {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Total returns the summed duration of all units.
func (r RunReport) Total() time.Duration {
	var d time.Duration
	for _, res := range r {
		d += res.Duration
	}
	return d
}
