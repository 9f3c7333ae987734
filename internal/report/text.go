package report

import (
	"fmt"
	"io"
	"strings"
)

const (
	SummaryTitle   = "Summary of files which violate formatting rules:"
	SuccessMessage = "no formatting violations found on current repo"
)

// TextReporter implements Reporter for plain text output.
type TextReporter struct {
	UseColour bool
	// HintCommand is the command suggested for fixing violations automatically.
	HintCommand string
}

const (
	colReset     = "\033[0m"
	colRed       = "\033[31m"
	colBoldRed   = "\033[1;31m"
	colBoldGreen = "\033[1;32m"
	colGrey      = "\033[90m"
)

// cs returns a string which will render with the given colour
// if colourisation is enabled.
func (tr *TextReporter) cs(c, s string) string {
	if !tr.UseColour {
		return s
	}
	return c + s + colReset
}

func (tr *TextReporter) Write(w io.Writer, r *CheckReport) error {
	if r.Fixed {
		fmt.Fprintf(w, "%s\n", tr.cs(colBoldGreen, fmt.Sprintf("reformatted %d file(s)", len(r.Violations))))
		return nil
	}

	if !r.HasViolations() {
		fmt.Fprintf(w, "%s\n", tr.cs(colBoldGreen, SuccessMessage))
		return nil
	}

	divider := strings.Repeat("-", len(SummaryTitle))
	fmt.Fprintf(w, "%s\n", divider)
	fmt.Fprintf(w, "%s\n", tr.cs(colBoldRed, SummaryTitle))
	fmt.Fprintf(w, "%s\n", divider)

	for _, v := range r.Violations {
		fmt.Fprintf(w, "%s\n", tr.cs(colRed, v))
	}

	hint := tr.HintCommand
	if hint == "" {
		hint = "cformat -c -fv"
	}
	fmt.Fprintf(w, "%s\n", tr.cs(colGrey, fmt.Sprintf(
		"Use `%s` to fix all reported violations automatically or fix each of the entries manually one-by-one.",
		hint)))

	return nil
}
