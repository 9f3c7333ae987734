package formatter

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"sync"
)

// Runner starts an external process and waits for it to finish.
type Runner interface {
	// Run executes name with args, streaming output to stdout and stderr.
	// A non-nil error is either an *exec.ExitError for a process that ran and
	// failed, or a start failure.
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// ExecRunner is the Runner backed by os/exec.
type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	//nolint:gosec // the formatter binary comes from trusted configuration
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// isStartFailure reports whether err means the process never ran.
func isStartFailure(err error) bool {
	if err == nil {
		return false
	}
	var exitErr *exec.ExitError
	return !errors.As(err, &exitErr)
}

// syncWriter serialises writes from concurrently running processes.
type syncWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (s syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
