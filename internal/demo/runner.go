package demo

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/errdemo/internal/errors"
	"github.com/agbru/errdemo/internal/logging"
	"github.com/agbru/errdemo/internal/ui"
)

const tracerName = "github.com/agbru/errdemo/internal/demo"

//go:generate mockgen -source=runner.go -destination=mocks/mock_recorder.go -package=mocks

// Recorder receives per-unit observations. metrics.Metrics implements it.
// Skipped units are reported with a zero duration.
type Recorder interface {
	ObserveUnit(unit, outcome string, d time.Duration)
	ObserveCondition(kind string, handled bool)
}

type nopRecorder struct{}

func (nopRecorder) ObserveUnit(string, string, time.Duration) {}
func (nopRecorder) ObserveCondition(string, bool)             {}

// Runner executes units one after another, writing their messages to out.
type Runner struct {
	out       io.Writer
	logger    logging.Logger
	recorder  Recorder
	tracer    trace.Tracer
	keepGoing bool
	verbose   bool
}

// Option configures a Runner during construction.
type Option func(*Runner)

// WithLogger sets the logger used for per-unit diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec Recorder) Option {
	return func(r *Runner) { r.recorder = rec }
}

// WithTracer sets the tracer that opens one span per unit.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) { r.tracer = t }
}

// WithKeepGoing makes the runner continue after an unhandled failure.
func WithKeepGoing(keepGoing bool) Option {
	return func(r *Runner) { r.keepGoing = keepGoing }
}

// WithVerbose prints a header before each unit.
func WithVerbose(verbose bool) Option {
	return func(r *Runner) { r.verbose = verbose }
}

// NewRunner creates a runner writing to out. Without options it logs
// nothing, records nothing and uses the global OpenTelemetry tracer.
func NewRunner(out io.Writer, opts ...Option) *Runner {
	r := &Runner{out: out}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.Nop()
	}
	if r.recorder == nil {
		r.recorder = nopRecorder{}
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(tracerName)
	}
	return r
}

// Run executes units in order. It stops at the first unhandled failure and
// returns it as an apperrors.UnhandledError; the units after it are reported
// as skipped. With keep-going enabled every unit runs and the returned error
// joins all unhandled failures. Cancellation of ctx is checked between
// units.
func (r *Runner) Run(ctx context.Context, units []Unit) (RunReport, error) {
	report := make(RunReport, 0, len(units))
	var failures []error

	for i, u := range units {
		if err := ctx.Err(); err != nil {
			report = r.skip(report, units[i:])
			return report, apperrors.WrapError(err, "run interrupted before %s", u.ID())
		}

		res := r.RunUnit(ctx, u)
		report = append(report, res)
		if res.Outcome != OutcomeUnhandled {
			continue
		}

		failure := apperrors.UnhandledError{Unit: res.Unit, Cause: res.Err}
		if !r.keepGoing {
			return r.skip(report, units[i+1:]), failure
		}
		failures = append(failures, failure)
	}
	return report, apperrors.JoinUnhandled(failures)
}

func (r *Runner) skip(report RunReport, rest []Unit) RunReport {
	for _, u := range rest {
		report = append(report, Result{Unit: u.ID(), Outcome: OutcomeSkipped, Handler: -1})
		r.recorder.ObserveUnit(u.ID(), OutcomeSkipped.String(), 0)
	}
	return report
}

// RunUnit executes a single unit: attempt, then the first matching handler
// or the no-failure message, then the cleanup message. Panics inside the
// attempt are converted into conditions by apperrors.Guard.
func (r *Runner) RunUnit(ctx context.Context, u Unit) (res Result) {
	id := u.ID()
	ctx, span := r.tracer.Start(ctx, id, trace.WithAttributes(attribute.String("errdemo.unit", id)))
	start := time.Now()
	res = Result{Unit: id, Handler: -1}

	if r.verbose {
		fmt.Fprintln(r.out, ui.Header(id))
	}
	r.logger.Debug("unit started", logging.String("unit", id))

	defer func() {
		if u.Cleanup != "" {
			fmt.Fprintln(r.out, u.Cleanup)
		}
		res.Duration = time.Since(start)
		r.finish(span, res)
	}()

	err := apperrors.Guard(func() error { return u.Attempt(ctx, r.out) })
	if err == nil {
		res.Outcome = OutcomeOK
		if u.NoFailure != "" {
			fmt.Fprintln(r.out, u.NoFailure)
		}
		return res
	}

	res.Err = err
	res.Kind = apperrors.KindOf(err)
	for i, h := range u.Handlers {
		if h.Matches(err) {
			res.Outcome = OutcomeHandled
			res.Handler = i
			fmt.Fprintln(r.out, h.Respond(err))
			return res
		}
	}
	res.Outcome = OutcomeUnhandled
	return res
}

func (r *Runner) finish(span trace.Span, res Result) {
	defer span.End()

	fields := []logging.Field{
		logging.String("unit", res.Unit),
		logging.String("outcome", res.Outcome.String()),
		logging.Duration("elapsed", res.Duration),
	}
	span.SetAttributes(attribute.String("errdemo.outcome", res.Outcome.String()))
	r.recorder.ObserveUnit(res.Unit, res.Outcome.String(), res.Duration)

	if res.Err == nil {
		r.logger.Debug("unit finished", fields...)
		return
	}

	handled := res.Outcome == OutcomeHandled
	kind := res.Kind.String()
	span.RecordError(res.Err, trace.WithAttributes(attribute.String("errdemo.kind", kind)))
	r.recorder.ObserveCondition(kind, handled)
	fields = append(fields, logging.String("kind", kind))

	if handled {
		r.logger.Info("condition handled", append(fields, logging.Int("handler", res.Handler), logging.Err(res.Err))...)
		return
	}
	span.SetStatus(codes.Error, res.Err.Error())
	r.logger.Error("unhandled failure", res.Err, fields...)
}
