package fs

import (
	"os"
)

// EnvProvider provides environment variable access.
type EnvProvider interface {
	// Get returns the value of the environment variable named by the key,
	// or "" if it is unset.
	Get(key string) string
}

// OSEnvProvider reads from the process environment.
type OSEnvProvider struct{}

// NewEnvProvider creates a new OSEnvProvider.
func NewEnvProvider() *OSEnvProvider {
	return &OSEnvProvider{}
}

func (e *OSEnvProvider) Get(key string) string {
	return os.Getenv(key)
}

// MapEnvProvider serves variables from a fixed map. Useful where the real
// environment must not leak in, such as tests running in parallel.
type MapEnvProvider map[string]string

func (m MapEnvProvider) Get(key string) string {
	return m[key]
}
