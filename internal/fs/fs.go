// Package fs holds the filesystem helpers used to locate source files.
package fs

import (
	"path/filepath"
)

// PathResolver turns user or git supplied paths into the absolute form that
// exclusion rules are matched against.
type PathResolver interface {
	// Abs returns the absolute, cleaned path.
	Abs(path string) (string, error)
	// CanonicalPath returns the absolute path with symlinks resolved.
	CanonicalPath(path string) (string, error)
}

// StandardPathResolver is the default implementation using the standard library.
type StandardPathResolver struct{}

// NewPathResolver creates a new StandardPathResolver.
func NewPathResolver() *StandardPathResolver {
	return &StandardPathResolver{}
}

func (r *StandardPathResolver) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

func (r *StandardPathResolver) CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// defaultResolver backs the package-level helpers.
var defaultResolver = NewPathResolver()

// Abs returns the absolute path using the default resolver.
func Abs(path string) (string, error) {
	return defaultResolver.Abs(path)
}

// CanonicalPath returns the canonical path using the default resolver.
func CanonicalPath(path string) (string, error) {
	return defaultResolver.CanonicalPath(path)
}
