package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/andyballingall/cformat/internal/config"
	"github.com/andyballingall/cformat/internal/formatter"
	"github.com/andyballingall/cformat/internal/fs"
	"github.com/andyballingall/cformat/internal/repo"
	"github.com/andyballingall/cformat/internal/validator"
)

// Version is the current version of cformat, set at build time.
var Version = "dev"

// MissingModeMessage is shown when neither mode was requested.
const MissingModeMessage = "Please specify `--source-path` to use for formatting or the `--check` option " +
	"to verify modified files formatting."

var LongDescription = `
cformat keeps C sources consistently formatted by driving clang-format.

Use --check as a pre-commit gate: every staged .c and .h file is checked and
the command fails when any of them needs formatting. Add
--force-format-violations to fix them instead.

Use --source-path to reformat a single file or a whole directory tree in place.
Exclusions, extensions and the formatter binary are read from .cformat.yml.
`

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(lazy *LazyManager, ll *slog.LevelVar, stdout, stderr io.Writer, env fs.EnvProvider) *cobra.Command {
	var opts Options
	var sourcePath pathValue
	var configPath pathValue
	output := formatValue("text")
	jobs := jobsValue(1)
	var noColour bool

	rootCmd := &cobra.Command{
		Use:           "cformat",
		Short:         "Check and fix the formatting of C sources with clang-format",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          LongDescription,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &UsageError{Message: fmt.Sprintf("unexpected argument %q", args[0])}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.SourcePath = string(sourcePath)
			opts.ConfigPath = string(configPath)
			opts.Output = string(output)
			opts.Jobs = int(jobs)
			opts.UseColour = !noColour && env.Get("NO_COLOR") == ""

			if err := validateOptions(opts); err != nil {
				return err
			}

			if opts.Verbose {
				ll.Set(slog.LevelDebug)
			}

			// Skip if already initialised (e.g., in tests)
			if !lazy.HasInner() {
				closer, err := buildManager(cmd.Context(), lazy, ll, stdout, stderr, env, opts)
				if closer != nil {
					defer closer.Close()
				}
				if err != nil {
					return err
				}
			}

			if opts.Check {
				return lazy.Check(cmd.Context(), opts)
			}
			return lazy.Format(cmd.Context(), opts)
		},
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Wrapped: err}
	})

	f := rootCmd.Flags()
	f.BoolVarP(&opts.Check, "check", "c", false, "check the formatting of files staged in git")
	f.BoolVar(&opts.Fix, "force-format-violations", false,
		"in check mode, reformat violating files instead of failing (legacy: -fv)")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	f.BoolVarP(&opts.Progress, "progress", "p", false, "show a progress indicator in check mode")
	f.VarP(&sourcePath, "source-path", "s", "file or directory to format in place (legacy: -src-path)")
	f.BoolVarP(&opts.DryRun, "dry-run", "n", false, "pass --dry-run to the formatter in format mode")
	f.BoolVarP(&opts.Watch, "watch", "w", false, "keep reformatting the --source-path directory as files change")
	f.VarP(&jobs, "jobs", "j", "maximum number of concurrent formatter processes")
	f.VarP(&output, "output", "o", "check report format: text or json")
	f.Var(&configPath, "config", "configuration file (overrides "+config.EnvVar+" and "+config.FileName+")")

	f.BoolVar(&noColour, "nocolour", false, "disable colour in output")
	// Support alternate spellings
	f.BoolVar(&noColour, "nocolor", false, "")
	f.BoolVar(&noColour, "noColor", false, "")
	f.BoolVar(&noColour, "noColour", false, "")
	_ = f.MarkHidden("nocolor")
	_ = f.MarkHidden("noColor")
	_ = f.MarkHidden("noColour")

	return rootCmd
}

// validateOptions rejects flag combinations that do not describe a run.
func validateOptions(opts Options) error {
	switch {
	case !opts.Check && opts.SourcePath == "":
		return &UsageError{Message: MissingModeMessage}
	case opts.Check && opts.Watch:
		return &UsageError{Message: "--watch cannot be combined with --check"}
	}
	return nil
}

// buildManager hydrates lazy with a CLIManager. The returned closer, when
// non-nil, releases the log file and must be closed by the caller.
func buildManager(
	ctx context.Context,
	lazy *LazyManager,
	ll *slog.LevelVar,
	stdout, stderr io.Writer,
	env fs.EnvProvider,
	opts Options,
) (io.Closer, error) {
	// 1. Setup Logging
	logger, closer, err := setupLogger(stderr, ll, env.Get(LogEnvVar))
	if err != nil {
		logger.Warn("logging to file disabled", "error", err)
	}

	// 2. Load configuration
	cwd, err := os.Getwd()
	if err != nil {
		return closer, err
	}
	gitter := repo.NewCLIGitter(cwd)

	// Outside a repository there is simply no top level to search.
	top, _ := gitter.TopLevel(ctx)
	cfgPath, err := config.Locate(opts.ConfigPath, env, top, cwd)
	if err != nil {
		return closer, err
	}
	cfg, err := config.Load(cfgPath, validator.NewSanthoshCompiler())
	if err != nil {
		return closer, err
	}
	logger.Debug("using configuration", "path", cfg.Path, "exclusions", cfg.Filter().Patterns())

	// 3. Build the formatter
	settings := formatter.Settings{Binary: cfg.Formatter, Style: cfg.Style}
	runner := formatter.NewExecRunner()
	checker := formatter.NewChecker(settings, runner, formatter.DefaultClassifier, logger)
	invoker := formatter.NewInvoker(settings, runner, stdout, stderr, logger)
	invoker.Jobs = opts.Jobs

	// 4. Hydrate the Lazy Wrapper
	lazy.SetInner(NewCLIManager(logger, cfg, gitter, checker, invoker, stdout, stderr))
	return closer, nil
}
