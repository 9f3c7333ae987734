// Package report renders the outcome of a check run.
package report

import (
	"io"
	"time"
)

// CheckReport collects what happened to each staged file during a check run.
type CheckReport struct {
	StartTime time.Time
	EndTime   time.Time

	// Total is the number of staged entries git reported.
	Total int
	// Checked lists files that were run through the formatter.
	Checked []string
	// Skipped lists files that were excluded or have no recognised extension.
	Skipped []string
	// Violations lists files whose formatting does not comply, in git order.
	Violations []string
	// Fixed is set when the violations were reformatted in place.
	Fixed bool
}

// HasViolations reports whether any file failed the check.
func (r *CheckReport) HasViolations() bool {
	return len(r.Violations) > 0
}

// Reporter writes a CheckReport in some output format.
type Reporter interface {
	Write(w io.Writer, r *CheckReport) error
}

// New returns the reporter for the given output format. Anything other than
// "json" yields the text reporter.
func New(format string, useColour bool, hintCommand string) Reporter {
	if format == "json" {
		return &JSONReporter{}
	}
	return &TextReporter{UseColour: useColour, HintCommand: hintCommand}
}
