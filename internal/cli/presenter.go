package cli

import (
	"fmt"
	"io"

	"github.com/agbru/errdemo/internal/demo"
	apperrors "github.com/agbru/errdemo/internal/errors"
	"github.com/agbru/errdemo/internal/format"
	"github.com/agbru/errdemo/internal/ui"
)

// Column headers of the summary table.
const (
	unitHeader     = "Unit"
	outcomeHeader  = "Outcome"
	kindHeader     = "Condition"
	durationHeader = "Duration"
)

// DisplaySummary writes the per-unit summary table followed by a totals
// line. Widths are measured on the plain text so styled status cells stay
// aligned.
func DisplaySummary(report demo.RunReport, out io.Writer) {
	fmt.Fprintf(out, "\n--- Run Summary ---\n")

	unitWidth, outcomeWidth, kindWidth := len(unitHeader), len(outcomeHeader), len(kindHeader)
	for _, res := range report {
		unitWidth = max(unitWidth, len(res.Unit))
		outcomeWidth = max(outcomeWidth, len(res.Outcome.String()))
		kindWidth = max(kindWidth, len(kindCell(res)))
	}

	fmt.Fprintf(out, "%s   %s   %s   %s\n",
		ui.PadRight(unitHeader, unitWidth),
		ui.PadRight(outcomeHeader, outcomeWidth),
		ui.PadRight(kindHeader, kindWidth),
		durationHeader)

	for _, res := range report {
		fmt.Fprintf(out, "%s   %s   %s   %s\n",
			ui.PadRight(res.Unit, unitWidth),
			ui.PadRight(FormatOutcome(res.Outcome), outcomeWidth),
			ui.PadRight(kindCell(res), kindWidth),
			format.FormatExecutionDuration(res.Duration))
	}

	fmt.Fprintln(out, FormatTotals(report))
}

// FormatOutcome returns the outcome name styled with the theme: unhandled
// failures in the error color, everything else in the success color.
func FormatOutcome(o demo.Outcome) string {
	return ui.Status(o.String(), o != demo.OutcomeUnhandled)
}

// FormatTotals returns the one-line tally of a run, e.g.
// "13 units: 2 ok, 10 handled, 1 unhandled, 0 skipped in 3ms".
func FormatTotals(report demo.RunReport) string {
	return fmt.Sprintf("%s: %d ok, %d handled, %d unhandled, %d skipped in %s",
		format.Plural(len(report), "unit"),
		report.Count(demo.OutcomeOK),
		report.Count(demo.OutcomeHandled),
		report.Count(demo.OutcomeUnhandled),
		report.Count(demo.OutcomeSkipped),
		format.FormatExecutionDuration(report.Total()))
}

func kindCell(res demo.Result) string {
	if res.Kind == apperrors.KindNone {
		return "-"
	}
	return res.Kind.String()
}
