/*
document.go - Catalog documents (JSON and YAML)

PURPOSE:
  Converts a catalog configuration document into a Catalog. The document is
  what a product owner edits; the Catalog is what the engine reads.

DOCUMENT SHAPE:
  {
    "ruleTypes": ["If", "And", "Or", "Then"],
    "conditions": {
      "Country":  {"inputType": "dropdown", "operators": ["=, !="], "values": ["Canada", ...]},
      "Assign Date": {"inputType": "date", "operators": ["=, >, <"]}
    }
  }

  operators[0] is a comma-separated operator list. A missing operators[0]
  means the condition type has no operators. The order of the "conditions"
  object is significant and preserved for both JSON and YAML.
*/
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// DOCUMENT TYPES
// =============================================================================

// Document is the serialized form of a catalog.
type Document struct {
	RuleTypes  []string   `json:"ruleTypes" yaml:"ruleTypes"`
	Conditions Conditions `json:"conditions" yaml:"conditions"`
}

// ConditionDocument is one entry of the "conditions" object.
type ConditionDocument struct {
	InputType string   `json:"inputType" yaml:"inputType"`
	Operators []string `json:"operators" yaml:"operators"`
	Values    []string `json:"values,omitempty" yaml:"values,omitempty"`
}

// NamedCondition pairs a condition document with its key.
type NamedCondition struct {
	Name string
	ConditionDocument
}

// Conditions is an ordered "conditions" object.
type Conditions []NamedCondition

// UnmarshalJSON decodes the object key by key so catalog order survives.
func (cs *Conditions) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*cs = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("conditions: expected object, got %v", tok)
	}

	var out Conditions
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("conditions: expected key, got %v", tok)
		}
		var cd ConditionDocument
		if err := dec.Decode(&cd); err != nil {
			return fmt.Errorf("condition %q: %w", name, err)
		}
		out = append(out, NamedCondition{Name: name, ConditionDocument: cd})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*cs = out
	return nil
}

// MarshalJSON writes the conditions as an object in catalog order.
func (cs Conditions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range cs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.ConditionDocument)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML reads a mapping node pairwise so catalog order survives.
func (cs *Conditions) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("conditions: expected mapping at line %d", node.Line)
	}
	out := make(Conditions, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var cd ConditionDocument
		if err := node.Content[i+1].Decode(&cd); err != nil {
			return fmt.Errorf("condition %q: %w", name, err)
		}
		out = append(out, NamedCondition{Name: name, ConditionDocument: cd})
	}
	*cs = out
	return nil
}

// =============================================================================
// DOCUMENT <-> CATALOG
// =============================================================================

// Catalog converts the document.
func (d Document) Catalog() *Catalog {
	specs := make([]ConditionSpec, 0, len(d.Conditions))
	for _, c := range d.Conditions {
		kind := ParseInputKind(c.InputType)
		spec := ConditionSpec{
			Name:      c.Name,
			InputKind: kind,
			Operators: ParseOperators(c.Operators),
		}
		if kind == KindDropdown {
			spec.Values = c.Values
		}
		specs = append(specs, spec)
	}
	return New(d.RuleTypes, specs)
}

// ToDocument is the inverse of Document.Catalog.
func ToDocument(c *Catalog) Document {
	d := Document{RuleTypes: c.RuleTypes()}
	for _, name := range c.ConditionTypes() {
		s, _ := c.Resolve(name)
		cd := ConditionDocument{InputType: string(s.InputKind), Operators: []string{}}
		if len(s.Operators) > 0 {
			cd.Operators = []string{strings.Join(s.Operators, ", ")}
		}
		if s.InputKind == KindDropdown {
			cd.Values = s.Values
		}
		d.Conditions = append(d.Conditions, NamedCondition{Name: name, ConditionDocument: cd})
	}
	return d
}

// ParseOperators splits operators[0] on commas. Blank tokens are dropped.
func ParseOperators(operators []string) []string {
	if len(operators) == 0 {
		return nil
	}
	var out []string
	for _, op := range strings.Split(operators[0], ",") {
		if op = strings.TrimSpace(op); op != "" {
			out = append(out, op)
		}
	}
	return out
}

// ParseJSON parses a JSON catalog document.
func ParseJSON(data []byte) (*Catalog, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	return d.Catalog(), nil
}

// ParseYAML parses a YAML catalog document.
func ParseYAML(data []byte) (*Catalog, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	return d.Catalog(), nil
}

// LoadFile reads a catalog document from disk. Files ending in .yaml or .yml
// are YAML, everything else is JSON.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}
