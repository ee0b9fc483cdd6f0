package model

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

type yamlField struct {
	Type        FieldType `yaml:"type"`
	Required    bool      `yaml:"required"`
	Default     any       `yaml:"default"`
	Label       string    `yaml:"label"`
	Placeholder string    `yaml:"placeholder"`
	Help        string    `yaml:"help"`
	Options     []string  `yaml:"options"`
}

// ParseYAML decodes a schema declared as a YAML mapping of field name to field
// spec:
//
//	name:
//	  type: text
//	  required: true
//	price:
//	  type: money
//	  default: 0
//
// Mapping order is preserved and becomes the schema's declaration order. The
// returned schema is normalized.
func ParseYAML(raw []byte) (Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Schema{}, fmt.Errorf("model yaml: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Schema{}, errors.New("model yaml: document is empty")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return Schema{}, fmt.Errorf("model yaml: expected a mapping of fields at line %d", root.Line)
	}

	schema := Schema{Fields: make([]Field, 0, len(root.Content)/2)}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		var spec yamlField
		if value.Kind != yaml.ScalarNode || value.Tag != "!!null" {
			if err := value.Decode(&spec); err != nil {
				return Schema{}, fmt.Errorf("model yaml: field %q: %w", key.Value, err)
			}
		}

		schema.Fields = append(schema.Fields, Field{
			Name:        key.Value,
			Type:        spec.Type,
			Required:    spec.Required,
			Default:     spec.Default,
			Label:       spec.Label,
			Placeholder: spec.Placeholder,
			Help:        spec.Help,
			Options:     spec.Options,
		})
	}

	return schema.Normalize()
}
