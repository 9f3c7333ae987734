package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/andyballingall/cformat/internal/fs"
)

// Run executes cformat with args (program name first) and converts every
// failure into console output. A non-nil return means the process should exit
// with status 1.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, envProvider fs.EnvProvider) error {
	logLevel := &slog.LevelVar{}
	logLevel.Set(slog.LevelInfo)

	// Local lazy instance ensures t.Parallel() safety
	lazy := &LazyManager{}

	if envProvider == nil {
		envProvider = fs.NewEnvProvider()
	}

	return run(ctx, lazy, logLevel, args, stdout, stderr, envProvider)
}

func run(
	ctx context.Context,
	lazy *LazyManager,
	logLevel *slog.LevelVar,
	args []string,
	stdout, stderr io.Writer,
	envProvider fs.EnvProvider,
) error {
	rootCmd := NewRootCmd(lazy, logLevel, stdout, stderr, envProvider)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if len(args) <= 1 {
		rootCmd.SetOut(stderr)
		_ = rootCmd.Help()
		return &UsageError{}
	}
	rootCmd.SetArgs(normalizeArgs(args[1:])) // Skip the program name

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	var usageErr *UsageError
	var violationsErr *ViolationsFoundError
	switch {
	case errors.As(err, &usageErr):
		if msg := usageErr.Error(); msg != "" {
			fmt.Fprintf(stderr, "Error: %s\n\n", msg)
		}
		rootCmd.SetOut(stderr)
		_ = rootCmd.Help()
	case errors.As(err, &violationsErr):
		// The report has already been printed.
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "Interrupted by user")
	default:
		fmt.Fprintf(stderr, apologyTemplate, err)
	}
	return err
}
