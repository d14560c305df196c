// Package app wires the resolved configuration, the runner and the command
// tree into one errdemo invocation.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/agbru/errdemo/internal/cli"
	"github.com/agbru/errdemo/internal/config"
	"github.com/agbru/errdemo/internal/demo"
	apperrors "github.com/agbru/errdemo/internal/errors"
	"github.com/agbru/errdemo/internal/logging"
	"github.com/agbru/errdemo/internal/metrics"
	"github.com/agbru/errdemo/internal/ui"
)

// Application represents one errdemo invocation.
type Application struct {
	Config    config.AppConfig
	Input     io.Reader
	ErrWriter io.Writer
	// Units builds the tour from the environment. Tests replace it.
	Units func(demo.Env) []demo.Unit
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the reader used for operator input when no input file is
// configured.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.Input = r }
}

// WithUnits replaces the built-in tour.
func WithUnits(build func(demo.Env) []demo.Unit) AppOption {
	return func(a *Application) { a.Units = build }
}

// New creates an Application for a resolved configuration.
func New(cfg config.AppConfig, errWriter io.Writer, opts ...AppOption) *Application {
	app := &Application{Config: cfg, ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Input == nil {
		app.Input = os.Stdin
	}
	if app.Units == nil {
		app.Units = demo.Builtin
	}
	return app
}

// Run executes the selected units and returns the process exit code.
// Unit messages go to out; logs, the summary and errors go to ErrWriter.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.Theme, a.Config.NoColor)
	logger := a.newLogger()

	report, err := a.execute(ctx, out, logger)
	if a.Config.Summary && len(report) > 0 {
		cli.DisplaySummary(report, a.ErrWriter)
	}
	if err != nil {
		fmt.Fprintln(a.ErrWriter, cli.FormatError(err))
	}

	code := apperrors.ExitCode(err)
	logger.Debug("run finished", logging.Int("exit_code", code), logging.Duration("elapsed", report.Total()))
	return code
}

// Interactive starts the explorer on a.Input and out. It returns when the
// operator exits, the input ends or ctx is canceled.
func (a *Application) Interactive(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.Theme, a.Config.NoColor)
	logger := a.newLogger()

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	repl := cli.NewREPL(cli.REPLConfig{
		Age:         a.Config.Age,
		MissingFile: a.Config.MissingFile,
		MaxAttempts: a.Config.MaxAttempts,
	}, demo.WithLogger(logger), demo.WithVerbose(a.Config.Verbose))
	repl.SetInput(a.Input)
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// newLogger builds the run logger, tagged with a fresh run ID.
func (a *Application) newLogger() logging.Logger {
	return logging.New(a.ErrWriter, logging.Options{
		Level:     a.Config.LogLevel,
		Format:    a.Config.LogFormat,
		Component: "errdemo",
	}).With(logging.String("run_id", uuid.NewString()))
}

func (a *Application) execute(ctx context.Context, out io.Writer, logger logging.Logger) (demo.RunReport, error) {
	input, closeInput, err := a.openInput()
	if err != nil {
		return nil, err
	}
	defer closeInput()

	env := demo.Env{
		Age:         a.Config.Age,
		MissingFile: a.Config.MissingFile,
		Input:       input,
		MaxAttempts: a.Config.MaxAttempts,
	}
	units, err := demo.Select(a.Units(env), a.Config.Units)
	if err != nil {
		return nil, err
	}

	// Setup lifecycle (timeout + signals)
	if a.Config.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, a.Config.Timeout)
		defer cancelTimeout()
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	m := metrics.New()
	runner := demo.NewRunner(out,
		demo.WithLogger(logger),
		demo.WithRecorder(m),
		demo.WithKeepGoing(a.Config.KeepGoing),
		demo.WithVerbose(a.Config.Verbose),
	)

	logger.Debug("run started", logging.Int("units", len(units)))
	report, err := runner.Run(ctx, units)
	if apperrors.IsContextError(err) {
		logger.Warn("run interrupted", logging.Err(err), logging.Int("skipped", report.Count(demo.OutcomeSkipped)))
		if errors.Is(err, context.DeadlineExceeded) {
			err = apperrors.TimeoutError{Operation: "run", Limit: a.Config.Timeout}
		}
	}

	if a.Config.MetricsOut != "" {
		if werr := m.WriteFile(a.Config.MetricsOut); werr != nil {
			logger.Error("writing metrics", werr, logging.String("path", a.Config.MetricsOut))
			if err == nil {
				err = werr
			}
		}
	}
	return report, err
}

// openInput returns the reader for operator input: the configured input
// file, or a.Input when none is set or the name is "-".
func (a *Application) openInput() (io.Reader, func(), error) {
	if a.Config.Input == "" || a.Config.Input == "-" {
		return a.Input, func() {}, nil
	}
	f, err := os.Open(a.Config.Input)
	if err != nil {
		return nil, nil, apperrors.NewConfigError("cannot open input file: %v", err)
	}
	return f, func() { _ = f.Close() }, nil
}
