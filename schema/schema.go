/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is a parsed schema file.
type Document struct {
	Types TypeSpecs `yaml:"types"`
}

// TypeSpec declares the field rules of one registered type.
type TypeSpec struct {
	// Name is the registry name of the type.
	Name string `yaml:"-"`
	// Alias lists extra names the type is registered under.
	Alias Aliases `yaml:"alias"`
	// Fields are kept in document order, which becomes declaration order.
	Fields FieldSpecs `yaml:"fields"`
}

// FieldSpec declares one field rule.
type FieldSpec struct {
	Name    string `yaml:"-"`
	Factory string `yaml:"factory"`
	Array   bool   `yaml:"array"`
	// Required is nil when the document leaves the default in place.
	Required *bool `yaml:"required"`
}

// TypeSpecs is the ordered content of the types mapping.
type TypeSpecs []TypeSpec

// FieldSpecs is the ordered content of a fields mapping.
type FieldSpecs []FieldSpec

// Aliases accepts either a single name or a list of names.
type Aliases []string

// UnmarshalYAML implements yaml.Unmarshaler, keeping mapping order.
func (t *TypeSpecs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: types must be a mapping", node.Line)
	}

	specs := make(TypeSpecs, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var spec TypeSpec
		if value.Kind != yaml.ScalarNode || value.Tag != "!!null" {
			if err := value.Decode(&spec); err != nil {
				return fmt.Errorf("type %s: %w", key.Value, err)
			}
		}
		spec.Name = key.Value
		specs = append(specs, spec)
	}

	*t = specs
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler, keeping mapping order.
// Accepts:
//   - Full form: bar: {factory: Bar, array: true, required: false}
//   - Shorthand: bar: Bar
func (f *FieldSpecs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: fields must be a mapping", node.Line)
	}

	specs := make(FieldSpecs, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var spec FieldSpec
		switch value.Kind {
		case yaml.ScalarNode:
			if err := value.Decode(&spec.Factory); err != nil {
				return fmt.Errorf("field %s: %w", key.Value, err)
			}
		case yaml.MappingNode:
			if err := value.Decode(&spec); err != nil {
				return fmt.Errorf("field %s: %w", key.Value, err)
			}
		default:
			return fmt.Errorf("field %s: expected factory name or mapping, got %v", key.Value, value.Kind)
		}
		spec.Name = key.Value
		specs = append(specs, spec)
	}

	*f = specs
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Aliases) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		if name != "" {
			*a = Aliases{name}
		} else {
			*a = Aliases{}
		}
		return nil

	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		*a = names
		return nil

	default:
		return fmt.Errorf("expected name or list of names, got %v", node.Kind)
	}
}
