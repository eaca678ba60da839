/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/suparena/primed/errors"
	"github.com/suparena/primed/registry"
)

// LoadFile reads the schema at path and applies it to r.
func LoadFile(r *registry.Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema file %s: %w", path, err)
	}
	return Load(r, data)
}

// Load parses data and applies it to r.
func Load(r *registry.Registry, data []byte) error {
	doc, err := Parse(data)
	if err != nil {
		return err
	}
	return doc.Apply(r)
}

// Parse parses YAML data into a Document. Every field must name a factory.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewValidationError("schema", fmt.Sprintf("failed to parse schema YAML: %v", err))
	}

	for _, t := range doc.Types {
		if t.Name == "" {
			return nil, errors.NewValidationError("types", "type name is empty")
		}
		for _, f := range t.Fields {
			if f.Factory == "" {
				return nil, errors.NewValidationError(t.Name+"."+f.Name, "factory is empty")
			}
		}
	}
	return &doc, nil
}

// Apply registers aliases and field rules in r. Every type must already be
// registered. A factory name resolves to a transformer registered under that
// name, otherwise to a reference to the type registered under it.
func (d *Document) Apply(r *registry.Registry) error {
	for _, t := range d.Types {
		desc, err := r.Resolve(t.Name)
		if err != nil {
			return fmt.Errorf("schema type %s: %w", t.Name, err)
		}

		for _, alias := range t.Alias {
			if _, err := r.Register(desc.Type, alias); err != nil {
				return fmt.Errorf("schema type %s alias %s: %w", t.Name, alias, err)
			}
		}

		for _, f := range t.Fields {
			if err := r.DefineField(desc.Type, f.Name, factoryOf(r, f.Factory), f.options()...); err != nil {
				return fmt.Errorf("schema field %s.%s: %w", t.Name, f.Name, err)
			}
		}
	}
	return nil
}

func factoryOf(r *registry.Registry, name string) registry.Factory {
	if t, ok := r.TransformerByName(name); ok {
		return registry.Using(t)
	}
	return registry.Ref(name)
}

func (f FieldSpec) options() []registry.Option {
	var opts []registry.Option
	if f.Array {
		opts = append(opts, registry.Array())
	}
	if f.Required != nil {
		opts = append(opts, registry.Required(*f.Required))
	}
	return opts
}
