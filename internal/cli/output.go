// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplaySummary], [DisplayUnits], [DisplayCatalogue].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatOutcome], [FormatTotals], [FormatError].

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/agbru/errdemo/internal/demo"
	apperrors "github.com/agbru/errdemo/internal/errors"
	"github.com/agbru/errdemo/internal/ui"
)

// DisplayUnits lists unit IDs with their descriptions, one per line.
func DisplayUnits(units []demo.Unit, out io.Writer) {
	width := 0
	for _, u := range units {
		width = max(width, len(u.ID()))
	}
	for _, u := range units {
		fmt.Fprintf(out, "%s%s%s   %s\n", ui.ColorPrimary(), ui.PadRight(u.ID(), width), ui.ColorReset(), u.Description)
	}
}

// DisplayCatalogue prints the well-known failure kinds and when they occur.
func DisplayCatalogue(entries []apperrors.CatalogueEntry, out io.Writer) {
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Kind.String()))
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s%s%s   %s\n", ui.ColorBold(), ui.PadRight(e.Kind.String(), width), ui.ColorReset(), e.Description)
	}
}

// FormatError renders a run error for stderr. A single unhandled failure,
// wrapped or not, is reported with the unit that raised it and the condition
// kind. Joined failures keep their own summary.
func FormatError(err error) string {
	msg := err.Error()
	var u apperrors.UnhandledError
	if errors.As(err, &u) && !isJoined(err) {
		msg = fmt.Sprintf("unhandled %s in %s: %v", apperrors.KindOf(u.Cause), u.Unit, u.Cause)
	}
	return fmt.Sprintf("%sError:%s %s", ui.ColorError(), ui.ColorReset(), msg)
}

// isJoined reports whether err's wrap chain contains a multi-error.
func isJoined(err error) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if _, ok := err.(interface{ Unwrap() []error }); ok {
			return true
		}
	}
	return false
}
