package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/andyballingall/cformat/internal/config"
	"github.com/andyballingall/cformat/internal/filter"
	"github.com/andyballingall/cformat/internal/formatter"
	"github.com/andyballingall/cformat/internal/fs"
	"github.com/andyballingall/cformat/internal/repo"
	"github.com/andyballingall/cformat/internal/report"
	"github.com/andyballingall/cformat/internal/watch"
)

// Manager runs the two top-level modes.
type Manager interface {
	// Check verifies the formatting of staged files.
	Check(ctx context.Context, opts Options) error
	// Format rewrites a file or every source file under a directory.
	Format(ctx context.Context, opts Options) error
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation, allowing
// for deferred initialization of dependencies.
type LazyManager struct {
	inner Manager
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// Tests use this to inject a manager before the command runs.
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) Check(ctx context.Context, opts Options) error {
	return l.check().Check(ctx, opts)
}

func (l *LazyManager) Format(ctx context.Context, opts Options) error {
	return l.check().Format(ctx, opts)
}

// FileChecker decides whether one file complies with the formatting rules.
type FileChecker interface {
	Check(ctx context.Context, path string) (formatter.Verdict, error)
}

// FileFormatter rewrites files in place.
type FileFormatter interface {
	Format(ctx context.Context, path string, dryRun bool) error
	FormatFiles(ctx context.Context, paths []string, dryRun bool, f *filter.Filter) error
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger   *slog.Logger
	cfg      *config.Config
	gitter   repo.Gitter
	checker  FileChecker
	invoker  FileFormatter
	resolver fs.PathResolver

	reporterWriter io.Writer
	progressWriter io.Writer
	hintCommand    string
}

func NewCLIManager(
	l *slog.Logger,
	cfg *config.Config,
	g repo.Gitter,
	c FileChecker,
	iv FileFormatter,
	stdout, stderr io.Writer,
) *CLIManager {
	return &CLIManager{
		logger:         l,
		cfg:            cfg,
		gitter:         g,
		checker:        c,
		invoker:        iv,
		resolver:       fs.NewPathResolver(),
		reporterWriter: stdout,
		progressWriter: stderr,
		hintCommand:    "cformat -c -fv",
	}
}

// checkResult is the outcome for one staged entry.
type checkResult struct {
	path    string
	skipped bool
	verdict formatter.Verdict
}

// Check runs the formatter in dry-run mode over every staged source file.
// Violations are either reformatted (opts.Fix) or reported, in which case a
// *ViolationsFoundError is returned.
func (m *CLIManager) Check(ctx context.Context, opts Options) error {
	m.logger.Debug("checking staged files", "fix", opts.Fix, "progress", opts.Progress, "jobs", opts.Jobs)
	start := time.Now()

	top, err := m.gitter.TopLevel(ctx)
	if err != nil {
		return err
	}

	m.logger.Info("checking modified files reported by git...")
	staged, err := m.gitter.StagedFiles(ctx)
	if err != nil {
		return err
	}

	var progress *report.Progress
	if opts.Progress {
		progress = report.NewProgress(m.progressWriter, len(staged))
	}

	results := make([]checkResult, len(staged))
	err = formatter.ForEach(ctx, opts.Jobs, len(staged), func(ctx context.Context, i int) error {
		progress.Step()
		res, cErr := m.checkEntry(ctx, top, staged[i])
		results[i] = res
		return cErr
	})
	progress.Finish()
	if err != nil {
		return err
	}

	rep := &report.CheckReport{StartTime: start, Total: len(staged)}
	for _, r := range results {
		switch {
		case r.skipped:
			rep.Skipped = append(rep.Skipped, r.path)
		case r.verdict == formatter.Violation:
			rep.Checked = append(rep.Checked, r.path)
			rep.Violations = append(rep.Violations, r.path)
		default:
			rep.Checked = append(rep.Checked, r.path)
		}
	}

	if opts.Fix {
		m.logger.Info("formatting source code formatting violations...")
		if err := m.invoker.FormatFiles(ctx, rep.Violations, false, m.cfg.Filter()); err != nil {
			return err
		}
		rep.Fixed = true
	}
	rep.EndTime = time.Now()

	reporter := report.New(opts.Output, opts.UseColour, m.hintCommand)
	if err := reporter.Write(m.reporterWriter, rep); err != nil {
		return err
	}

	if !rep.Fixed && rep.HasViolations() {
		return &ViolationsFoundError{Count: len(rep.Violations)}
	}
	return nil
}

// checkEntry resolves a path reported by git against the repository top level
// and checks it unless it is excluded or not a recognised source file.
func (m *CLIManager) checkEntry(ctx context.Context, top, entry string) (checkResult, error) {
	path, err := m.resolve(filepath.Join(top, filepath.FromSlash(entry)))
	if err != nil {
		return checkResult{}, err
	}

	if m.cfg.Filter().Excluded(path) || !fs.HasExtension(path, m.cfg.Extensions) {
		m.logger.Debug("skipping `" + path + "`...")
		return checkResult{path: path, skipped: true}, nil
	}

	v, err := m.checker.Check(ctx, path)
	if err != nil {
		return checkResult{}, err
	}
	return checkResult{path: path, verdict: v}, nil
}

// resolve returns the absolute path with symlinks followed. A path that does
// not exist is only made absolute.
func (m *CLIManager) resolve(path string) (string, error) {
	p, err := m.resolver.CanonicalPath(path)
	if errors.Is(err, os.ErrNotExist) {
		return m.resolver.Abs(path)
	}
	return p, err
}

// discover lists the source files under root in their resolved form. A file
// reachable through several links is listed once.
func (m *CLIManager) discover(root string) ([]string, error) {
	found, err := fs.Discover(root, m.cfg.Extensions)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(found))
	seen := make(map[string]bool, len(found))
	for _, f := range found {
		p, err := m.resolve(f)
		if err != nil {
			return nil, err
		}
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}
	return files, nil
}

// Format rewrites opts.SourcePath in place. A directory is searched
// recursively for recognised source files; with opts.Watch it is then
// watched until the context is cancelled.
func (m *CLIManager) Format(ctx context.Context, opts Options) error {
	m.logger.Debug("formatting", "path", opts.SourcePath, "dryRun", opts.DryRun, "watch", opts.Watch)

	info, err := os.Stat(opts.SourcePath)
	if err != nil {
		return &SourcePathNotFoundError{Path: opts.SourcePath, Wrapped: err}
	}

	path, err := m.resolve(opts.SourcePath)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		if opts.Watch {
			return &UsageError{Message: "--watch requires --source-path to be a directory"}
		}
		if m.cfg.Filter().Excluded(path) {
			m.logger.Debug("skipping `" + path + "`...")
			return nil
		}
		return m.invoker.Format(ctx, path, opts.DryRun)
	}

	files, err := m.discover(path)
	if err != nil {
		return err
	}
	if err := m.invoker.FormatFiles(ctx, files, opts.DryRun, m.cfg.Filter()); err != nil {
		return err
	}

	if opts.Watch {
		return m.watch(ctx, path, opts)
	}
	return nil
}

func (m *CLIManager) watch(ctx context.Context, root string, opts Options) error {
	accept := func(p string) bool {
		return fs.HasExtension(p, m.cfg.Extensions) && m.cfg.Filter().Included(p)
	}
	w := watch.NewWatcher(root, accept, m.logger)

	err := w.Watch(ctx, func(ctx context.Context, paths []string) {
		for _, p := range paths {
			m.logger.Info("file changed: " + p)
			if fErr := m.invoker.Format(ctx, p, opts.DryRun); fErr != nil {
				m.logger.Error("formatting failed", "path", p, "error", fErr)
			}
		}
	})
	if errors.Is(err, context.Canceled) {
		m.logger.Info("Interrupted by user")
		return nil
	}
	return err
}
