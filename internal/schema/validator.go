package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// maxReported is the number of problems quoted in an error message.
const maxReported = 3

// ValidationError lists every way a document failed its schema.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	shown := e.Problems
	more := ""
	if len(shown) > maxReported {
		more = fmt.Sprintf("\n... and %d more", len(shown)-maxReported)
		shown = shown[:maxReported]
	}
	return "schema validation failed:\n- " + strings.Join(shown, "\n- ") + more
}

// Validator checks documents against JSON schemas, compiling each distinct
// schema once.
type Validator struct {
	cache sync.Map // schema JSON -> *gojsonschema.Schema
}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks a JSON document. The schema may be a map, a JSON string
// or any value that marshals to a schema.
func (v *Validator) Validate(schemaData any, docJSON string) error {
	return v.validate(schemaData, gojsonschema.NewStringLoader(docJSON))
}

// ValidateValue checks an already decoded document, such as one read from
// YAML.
func (v *Validator) ValidateValue(schemaData any, doc any) error {
	return v.validate(schemaData, gojsonschema.NewGoLoader(doc))
}

func (v *Validator) validate(schemaData any, doc gojsonschema.JSONLoader) error {
	compiled, err := v.compile(schemaData)
	if err != nil {
		return fmt.Errorf("invalid schema definition: %w", err)
	}
	result, err := compiled.Validate(doc)
	if err != nil {
		return fmt.Errorf("validation execution failed: %w", err)
	}
	if result.Valid() {
		return nil
	}
	verr := &ValidationError{}
	for _, desc := range result.Errors() {
		verr.Problems = append(verr.Problems, desc.String())
	}
	return verr
}

func (v *Validator) compile(schemaData any) (*gojsonschema.Schema, error) {
	var raw []byte
	switch s := schemaData.(type) {
	case string:
		raw = []byte(s)
	case []byte:
		raw = s
	default:
		b, err := json.Marshal(schemaData)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	key := string(raw)
	if cached, ok := v.cache.Load(key); ok {
		return cached.(*gojsonschema.Schema), nil
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, err
	}
	v.cache.Store(key, compiled)
	return compiled, nil
}
