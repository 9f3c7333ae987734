package formatter

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"unicode/utf8"
)

// Checker runs the formatter in dry-run mode and classifies what it reports.
type Checker struct {
	settings   Settings
	runner     Runner
	classifier Classifier
	logger     *slog.Logger
}

// NewChecker creates a Checker. A nil classifier selects DefaultClassifier.
func NewChecker(s Settings, r Runner, c Classifier, logger *slog.Logger) *Checker {
	if c == nil {
		c = DefaultClassifier
	}
	return &Checker{settings: s, runner: r, classifier: c, logger: logger}
}

// Check runs `<binary> --dry-run <path>` and classifies its stderr. The exit
// status of the formatter is not consulted.
func (c *Checker) Check(ctx context.Context, path string) (Verdict, error) {
	c.logger.Debug("checking format of `" + path + "`...")

	var diag bytes.Buffer
	err := c.runner.Run(ctx, c.settings.Binary, c.settings.args("--dry-run", path), io.Discard, &diag)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Compliant, ctxErr
	}
	if isStartFailure(err) {
		return Compliant, &NotFoundError{Binary: c.settings.Binary, Wrapped: err}
	}

	if !utf8.Valid(diag.Bytes()) {
		return Compliant, &OutputDecodeError{Path: path}
	}

	v := c.classifier.Classify(diag.String())
	if v == Violation {
		c.logger.Debug("format verification failed for file: `" + path + "`!")
	}
	return v, nil
}
