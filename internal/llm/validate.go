package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds compiled schemas keyed by Schema.Name. Names are unique
// per process, so the first definition registered under a name wins.
var compiled sync.Map // map[string]*jsonschema.Schema

// validateResponse checks raw against schema. A nil schema accepts
// anything. Failures are *ErrInvalidResponse carrying the raw content.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	invalid := func(format string, args ...any) error {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf(format, args...)}
	}

	// UnmarshalJSON keeps numbers as json.Number, so integer bounds such as
	// confidenceScore 1..5 are checked exactly.
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid("invalid JSON: %w", err)
	}

	sch, err := compileSchema(schema)
	if err != nil {
		return invalid("compile schema %q: %w", schema.Name, err)
	}
	if err := sch.Validate(doc); err != nil {
		return invalid("schema validation failed: %w", err)
	}
	return nil
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if sch, ok := compiled.Load(schema.Name); ok {
		return sch.(*jsonschema.Schema), nil
	}

	// Go literals (int, []string) are normalized through a JSON round trip.
	raw, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	url := "schema://" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	actual, _ := compiled.LoadOrStore(schema.Name, sch)
	return actual.(*jsonschema.Schema), nil
}
