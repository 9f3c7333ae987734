package formatter

import (
	"strings"
)

// Verdict is the outcome of checking one file.
type Verdict int

const (
	Compliant Verdict = iota
	Violation
)

func (v Verdict) String() string {
	if v == Violation {
		return "violation"
	}
	return "compliant"
}

// Classifier turns the formatter's dry-run diagnostics into a Verdict.
type Classifier interface {
	Classify(diagnostics string) Verdict
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(diagnostics string) Verdict

func (f ClassifierFunc) Classify(diagnostics string) Verdict {
	return f(diagnostics)
}

// KeywordClassifier reports a Violation when the diagnostics contain any of
// its keywords. Output without a keyword, informational chatter included, is
// Compliant.
type KeywordClassifier struct {
	Keywords []string
}

// DefaultClassifier matches clang-format's "warning:" and "error:" prefixes.
var DefaultClassifier = KeywordClassifier{Keywords: []string{"warning:", "error:"}}

func (k KeywordClassifier) Classify(diagnostics string) Verdict {
	if diagnostics == "" {
		return Compliant
	}
	for _, kw := range k.Keywords {
		if strings.Contains(diagnostics, kw) {
			return Violation
		}
	}
	return Compliant
}
