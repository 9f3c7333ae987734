package formatter

import (
	"fmt"
)

// NotFoundError means the formatter process could not be started at all,
// usually because the binary is missing from PATH or not executable.
type NotFoundError struct {
	Binary  string
	Wrapped error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not run formatter %q (is it installed and on PATH?): %v", e.Binary, e.Wrapped)
}

func (e *NotFoundError) Unwrap() error {
	return e.Wrapped
}

type OutputDecodeError struct {
	Path string
}

func (e *OutputDecodeError) Error() string {
	return fmt.Sprintf("formatter output for %s is not valid utf-8", e.Path)
}
