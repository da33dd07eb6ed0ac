// Package toolschema validates a tool's input payload against that
// tool's declared JSON Schema before a turn is allowed to execute it.
// hook/toolschemahook adapts a Validator into a hook.Hook for a turn's
// pre-tool-use hook point; this package itself only compiles schemas and
// validates inputs against them.
package toolschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Validator compiles and caches JSON Schemas by tool name and validates
// candidate tool inputs against them.
//
// Validator is safe for concurrent use.
type Validator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{compiled: make(map[string]*jsonschema.Schema)}
}

// Register compiles schema and associates it with toolName. Calling
// Register again for the same toolName replaces its schema.
func (v *Validator) Register(toolName string, schema json.RawMessage) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema))
	if err != nil {
		return fmt.Errorf("toolschema: decode schema for %q: %w", toolName, err)
	}

	resourceURL := "toolschema:" + toolName
	c := jsonschema.NewCompiler()
	if err := c.AddResource(resourceURL, doc); err != nil {
		return fmt.Errorf("toolschema: add resource for %q: %w", toolName, err)
	}
	compiled, err := c.Compile(resourceURL)
	if err != nil {
		return fmt.Errorf("toolschema: compile schema for %q: %w", toolName, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.compiled[toolName] = compiled
	return nil
}

// Validate checks input against toolName's registered schema. A tool
// with no registered schema is treated as accepting any input: Validate
// returns nil.
func (v *Validator) Validate(toolName string, input json.RawMessage) error {
	v.mu.RLock()
	schema, ok := v.compiled[toolName]
	v.mu.RUnlock()
	if !ok {
		return nil
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(input))
	if err != nil {
		return fmt.Errorf("toolschema: decode input for %q: %w", toolName, err)
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("toolschema: input for %q invalid: %w", toolName, err)
	}
	return nil
}
