package app

import (
	"fmt"
)

// apologyTemplate is the one message shown for failures nothing else handles.
const apologyTemplate = "Ooops... This is kind of embarrassing. We have an exception:\n\n>>> %v <<<\n"

// UsageError means the command line did not describe a runnable request.
// Help is printed after the message.
type UsageError struct {
	Message string
	Wrapped error
}

func (e *UsageError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Wrapped != nil {
		return e.Wrapped.Error()
	}
	return ""
}

func (e *UsageError) Unwrap() error {
	return e.Wrapped
}

// ViolationsFoundError is returned by check mode when files need formatting.
// The violations have already been reported when it is returned.
type ViolationsFoundError struct {
	Count int
}

func (e *ViolationsFoundError) Error() string {
	return fmt.Sprintf("%d file(s) violate formatting rules", e.Count)
}

type SourcePathNotFoundError struct {
	Path    string
	Wrapped error
}

func (e *SourcePathNotFoundError) Error() string {
	return fmt.Sprintf("source path %s cannot be read: %v", e.Path, e.Wrapped)
}

func (e *SourcePathNotFoundError) Unwrap() error {
	return e.Wrapped
}
