package repo

import (
	"fmt"
	"strings"
)

type GitError struct {
	Args    []string
	Output  string
	Wrapped error
}

func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed: %v", strings.Join(e.Args, " "), e.Wrapped)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += fmt.Sprintf(" (output: %s)", out)
	}
	return msg
}

func (e *GitError) Unwrap() error {
	return e.Wrapped
}

type NoTopLevelError struct{}

func (e *NoTopLevelError) Error() string {
	return "git did not report a repository top level directory"
}
