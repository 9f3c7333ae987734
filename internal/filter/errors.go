package filter

import (
	"fmt"
)

type InvalidPatternError struct {
	Index   int
	Pattern string
	Wrapped error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("exclusion pattern #%d %q is not a valid regular expression: %v", e.Index, e.Pattern, e.Wrapped)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Wrapped
}
