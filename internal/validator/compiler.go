// Package validator wraps JSON Schema validation behind a small interface.
package validator

// A JSONDocument is a parsed JSON document, in the shape produced by
// jsonschema.UnmarshalJSON.
type JSONDocument interface{}

// A JSONSchema is a parsed JSON document representing a JSON Schema.
type JSONSchema JSONDocument

// Validator validates documents against one compiled schema.
type Validator interface {
	Validate(v JSONDocument) error
}

// Compiler registers schemas by ID and compiles them into Validators.
type Compiler interface {
	// AddSchema registers a JSONSchema with the compiler.
	AddSchema(id string, data JSONSchema) error

	// Compile creates a Validator from the JSONSchema previously added with the given ID.
	Compile(id string) (Validator, error)
}
