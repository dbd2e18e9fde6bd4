// Package responsetemplate loads the JSON skeleton that tells the model how
// to shape its quiz answer.
package responsetemplate

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed default_template.json
var defaultTemplate []byte

//go:embed schema.json
var templateSchema []byte

const schemaURL = "response_template.schema.json"

// Template is loaded once at startup and shared read-only.
type Template struct {
	compact string
	source  string
}

// Load reads and validates the template at path. An empty path selects the
// embedded default.
func Load(path string) (*Template, error) {
	if path == "" {
		return Parse(defaultTemplate, "embedded default")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read response template: %w", err)
	}
	return Parse(data, path)
}

// Parse validates raw template bytes against the quiz response schema.
func Parse(data []byte, source string) (*Template, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("response template %s is not valid JSON: %w", source, err)
	}
	if err := validate(doc); err != nil {
		return nil, fmt.Errorf("response template %s: %w", source, err)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, fmt.Errorf("compact response template: %w", err)
	}
	return &Template{compact: buf.String(), source: source}, nil
}

// JSON returns the template as compact JSON with its key order intact.
func (t *Template) JSON() string {
	return t.compact
}

// Source names where the template was loaded from.
func (t *Template) Source() string {
	return t.source
}

func validate(doc any) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(templateSchema)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("does not match the quiz response shape: %w", err)
	}
	return nil
}
