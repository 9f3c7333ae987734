package config

import (
	"fmt"
)

type MissingConfigError struct {
	Path string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("configuration file not found: %s", e.Path)
}

type InvalidYAMLError struct {
	Path    string
	Wrapped error
}

func (e *InvalidYAMLError) Error() string {
	return fmt.Sprintf("%s is not a valid yaml document: %v", e.Path, e.Wrapped)
}

func (e *InvalidYAMLError) Unwrap() error {
	return e.Wrapped
}

type SchemaViolationError struct {
	Path    string
	Wrapped error
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("%s does not match the configuration schema: %v", e.Path, e.Wrapped)
}

func (e *SchemaViolationError) Unwrap() error {
	return e.Wrapped
}

type InvalidExclusionsError struct {
	Path    string
	Wrapped error
}

func (e *InvalidExclusionsError) Error() string {
	return fmt.Sprintf("%s has invalid exclusions: %v", e.Path, e.Wrapped)
}

func (e *InvalidExclusionsError) Unwrap() error {
	return e.Wrapped
}
