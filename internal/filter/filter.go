// Package filter decides which source files are subject to formatting.
package filter

import (
	"path/filepath"
	"regexp"

	"github.com/hashicorp/go-multierror"
)

// Filter holds an ordered list of exclusion patterns. Patterns are regular
// expressions searched for anywhere in a path, not anchored matches.
type Filter struct {
	patterns []*regexp.Regexp
}

// New compiles the given patterns in order. Every pattern that fails to compile
// is reported, not just the first one.
func New(patterns []string) (*Filter, error) {
	f := &Filter{patterns: make([]*regexp.Regexp, 0, len(patterns))}

	var result *multierror.Error
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			result = multierror.Append(result, &InvalidPatternError{Index: i, Pattern: p, Wrapped: err})
			continue
		}
		f.patterns = append(f.patterns, re)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return f, nil
}

// Patterns returns the source text of the compiled patterns.
func (f *Filter) Patterns() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.patterns))
	for i, re := range f.patterns {
		out[i] = re.String()
	}
	return out
}

// Included reports whether path survives the exclusion list. The path is
// expected to be absolute; separators are normalised to '/' first so that
// patterns never need to spell out the platform separator.
// A nil Filter includes everything.
func (f *Filter) Included(path string) bool {
	return f.Match(path) == ""
}

// Excluded is the negation of Included.
func (f *Filter) Excluded(path string) bool {
	return !f.Included(path)
}

// Match returns the first pattern that matches path, or "" when none do.
func (f *Filter) Match(path string) string {
	if f == nil {
		return ""
	}
	normalised := Normalize(path)
	for _, re := range f.patterns {
		if re.MatchString(normalised) {
			return re.String()
		}
	}
	return ""
}

// Normalize converts the OS path separator in path to '/'.
func Normalize(path string) string {
	return filepath.ToSlash(path)
}
