package formatter

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/andyballingall/cformat/internal/filter"
)

// Invoker rewrites files in place. Whatever the formatter prints is passed
// straight through; it plays no part in pass/fail decisions.
type Invoker struct {
	settings Settings
	runner   Runner
	stdout   io.Writer
	stderr   io.Writer
	logger   *slog.Logger

	// Jobs bounds the number of formatter processes FormatFiles runs at once.
	Jobs int
}

func NewInvoker(s Settings, r Runner, stdout, stderr io.Writer, logger *slog.Logger) *Invoker {
	mu := &sync.Mutex{}
	return &Invoker{
		settings: s,
		runner:   r,
		stdout:   syncWriter{mu: mu, w: stdout},
		stderr:   syncWriter{mu: mu, w: stderr},
		logger:   logger,
		Jobs:     1,
	}
}

// Format runs `<binary> -i <path>`, adding --dry-run when dryRun is set.
// Only a failure to start the formatter is returned as an error; a non-zero
// exit is logged and otherwise ignored.
func (iv *Invoker) Format(ctx context.Context, path string, dryRun bool) error {
	iv.logger.Debug("formatting file `" + path + "`...")

	extra := []string{"-i", path}
	if dryRun {
		extra = append(extra, "--dry-run")
	}

	err := iv.runner.Run(ctx, iv.settings.Binary, iv.settings.args(extra...), iv.stdout, iv.stderr)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if isStartFailure(err) {
		return &NotFoundError{Binary: iv.settings.Binary, Wrapped: err}
	}
	if err != nil {
		iv.logger.Warn("formatter reported a failure", "path", path, "error", err)
	}
	return nil
}

// FormatFiles formats every path that f includes, in order.
func (iv *Invoker) FormatFiles(ctx context.Context, paths []string, dryRun bool, f *filter.Filter) error {
	iv.logger.Info("formatting files...")

	return ForEach(ctx, iv.Jobs, len(paths), func(ctx context.Context, i int) error {
		path := paths[i]
		if f.Excluded(path) {
			iv.logger.Debug("skipping `" + path + "`...")
			return nil
		}
		return iv.Format(ctx, path, dryRun)
	})
}
