package repo

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// CLIGitter is the concrete implementation of Gitter using the git CLI.
type CLIGitter struct {
	dir string
}

// NewCLIGitter creates a CLIGitter that runs git in dir. An empty dir means
// the current working directory.
func NewCLIGitter(dir string) *CLIGitter {
	return &CLIGitter{dir: dir}
}

func (g *CLIGitter) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &GitError{Args: args, Output: stderr.String(), Wrapped: err}
	}
	return stdout.String(), nil
}

// TopLevel runs `git rev-parse --show-toplevel` and returns its first line.
func (g *CLIGitter) TopLevel(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	lines := splitLines(out)
	if len(lines) == 0 {
		return "", &NoTopLevelError{}
	}
	return lines[0], nil
}

// StagedFiles runs `git diff --cached --name-only --diff-filter=d -z`.
// NUL separation keeps paths with unusual characters unquoted.
func (g *CLIGitter) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := g.run(ctx, "diff", "--cached", "--name-only", "--diff-filter=d", "-z")
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, p := range strings.Split(out, "\x00") {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// splitLines splits git output into lines, dropping blank ones and any
// trailing carriage returns.
func splitLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		l = strings.TrimRight(l, "\r")
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
