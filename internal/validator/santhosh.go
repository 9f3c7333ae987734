package validator

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// NewSanthoshCompiler returns a Compiler backed by santhosh-tekuri/jsonschema/v6.
func NewSanthoshCompiler() Compiler {
	return &santhoshCompiler{c: jsonschema.NewCompiler()}
}

type santhoshValidator struct {
	v *jsonschema.Schema
}

func (sv *santhoshValidator) Validate(doc JSONDocument) error {
	return sv.v.Validate(doc)
}

type santhoshCompiler struct {
	mu sync.Mutex
	c  *jsonschema.Compiler
}

func (s *santhoshCompiler) AddSchema(id string, schemaData JSONSchema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.AddResource(id, schemaData)
}

func (s *santhoshCompiler) Compile(id string) (Validator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.c.Compile(id)
	if err != nil {
		return nil, err
	}
	return &santhoshValidator{v: v}, nil
}

// ParseJSON decodes data into the document shape the validator expects.
func ParseJSON(data []byte) (JSONDocument, error) {
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

// Normalize converts a document decoded by another codec (YAML, for instance)
// into the JSON value shapes the validator understands by round-tripping it
// through encoding/json.
func Normalize(doc any) (JSONDocument, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return ParseJSON(data)
}
