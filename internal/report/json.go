package report

import (
	"encoding/json"
	"io"
	"time"
)

// JSONReporter implements Reporter for JSON output.
type JSONReporter struct{}

type jsonOutput struct {
	StartTime  string   `json:"startTime"`
	EndTime    string   `json:"endTime"`
	Duration   string   `json:"duration"`
	Total      int      `json:"total"`
	Checked    []string `json:"checked"`
	Skipped    []string `json:"skipped"`
	Violations []string `json:"violations"`
	Fixed      bool     `json:"fixed"`
}

func (jr *JSONReporter) Write(w io.Writer, r *CheckReport) error {
	out := jsonOutput{
		StartTime:  r.StartTime.Format(time.RFC3339),
		EndTime:    r.EndTime.Format(time.RFC3339),
		Duration:   r.EndTime.Sub(r.StartTime).String(),
		Total:      r.Total,
		Checked:    nonNil(r.Checked),
		Skipped:    nonNil(r.Skipped),
		Violations: nonNil(r.Violations),
		Fixed:      r.Fixed,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// nonNil keeps empty lists rendering as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
