package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agbru/errdemo/internal/demo"
	apperrors "github.com/agbru/errdemo/internal/errors"
	"github.com/agbru/errdemo/internal/format"
	"github.com/agbru/errdemo/internal/ui"
)

// REPLConfig holds configuration for the interactive session.
type REPLConfig struct {
	// Age is the initial value checked by the negative-age unit.
	Age int
	// MissingFile is opened by the file-not-found unit.
	MissingFile string
	// MaxAttempts bounds the read-number unit; zero is unlimited.
	MaxAttempts int
}

// REPL lets an operator run units one at a time and adjust their inputs
// between runs.
type REPL struct {
	config     REPLConfig
	in         *bufio.Reader
	out        io.Writer
	runnerOpts []demo.Option
}

// NewREPL creates a new REPL reading from stdin and writing to stdout.
// opts configure the runner used for every command.
func NewREPL(config REPLConfig, opts ...demo.Option) *REPL {
	return &REPL{
		config:     config,
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		runnerOpts: opts,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = bufio.NewReader(in)
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads commands until exit, end of input or cancellation of ctx.
// The read-number unit reads its answers from the same input.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	for ctx.Err() == nil {
		fmt.Fprint(r.out, ui.ColorSuccess()+"errdemo> "+ui.ColorReset())

		input, err := r.in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(input) == "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorError(), err, ui.ColorReset())
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(ctx, input) {
			return // Exit command received
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintln(r.out, ui.Header("errdemo - interactive mode"))
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %srun <unit...>%s  - Run the named units (a bare unit ID works too)\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sall%s            - Run the whole tour, continuing past failures\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sage <n>%s        - Set the age checked by negative-age\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s           - List unit IDs\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sconditions%s     - Describe the failure kinds\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s         - Display current settings\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s           - Display this help\n", ui.ColorWarning(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s    - Leave interactive mode\n", ui.ColorWarning(), ui.ColorReset(), ui.ColorWarning(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "run", "r":
		if len(args) == 0 {
			fmt.Fprintf(r.out, "%sUsage: run <unit...>%s\n", ui.ColorError(), ui.ColorReset())
			return true
		}
		r.runUnits(ctx, args, false)
	case "all":
		r.runUnits(ctx, nil, true)
	case "age":
		r.cmdAge(args)
	case "list", "ls":
		DisplayUnits(r.units(), r.out)
	case "conditions", "kinds":
		DisplayCatalogue(apperrors.Catalogue(), r.out)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorSuccess(), ui.ColorReset())
		return false
	default:
		// Try to interpret the input as unit IDs
		if _, err := demo.Select(r.units(), parts); err == nil {
			r.runUnits(ctx, parts, false)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorError(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorWarning(), ui.ColorReset())
		}
	}

	return true
}

func (r *REPL) units() []demo.Unit {
	return demo.Builtin(demo.Env{
		Age:         r.config.Age,
		MissingFile: r.config.MissingFile,
		Input:       r.in,
		MaxAttempts: r.config.MaxAttempts,
	})
}

// runUnits runs the selected units and reports each outcome on one line.
func (r *REPL) runUnits(ctx context.Context, names []string, keepGoing bool) {
	units, err := demo.Select(r.units(), names)
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorError(), err, ui.ColorReset())
		return
	}

	opts := append(append([]demo.Option(nil), r.runnerOpts...), demo.WithKeepGoing(keepGoing))
	report, _ := demo.NewRunner(r.out, opts...).Run(ctx, units)

	for _, res := range report {
		line := fmt.Sprintf("→ %s: %s", res.Unit, FormatOutcome(res.Outcome))
		if res.Err != nil {
			line += fmt.Sprintf(" (%s: %v)", res.Kind, res.Err)
		}
		fmt.Fprintf(r.out, "%s in %s\n", line, format.FormatExecutionDuration(res.Duration))
	}
	if len(report) > 1 {
		fmt.Fprintln(r.out, FormatTotals(report))
	}
}

// cmdAge parses the new age with the same conversion the tour demonstrates.
func (r *REPL) cmdAge(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: age <n>%s\n", ui.ColorError(), ui.ColorReset())
		return
	}

	age, err := demo.ParseInt(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorError(), demo.InvalidValueText, ui.ColorReset())
		return
	}

	r.config.Age = age
	fmt.Fprintf(r.out, "Age set to: %s%d%s\n", ui.ColorSuccess(), age, ui.ColorReset())
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent settings:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Age:           %s%d%s\n", ui.ColorPrimary(), r.config.Age, ui.ColorReset())
	fmt.Fprintf(r.out, "  Missing file:  %s%s%s\n", ui.ColorPrimary(), r.config.MissingFile, ui.ColorReset())
	attempts := "unlimited"
	if r.config.MaxAttempts > 0 {
		attempts = fmt.Sprint(r.config.MaxAttempts)
	}
	fmt.Fprintf(r.out, "  Max attempts:  %s%s%s\n", ui.ColorPrimary(), attempts, ui.ColorReset())
	fmt.Fprintln(r.out)
}
