/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package primed

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/primed/registry"
)

// Model provides type-safe registration and hydration for a specific type T
type Model[T any] struct {
	engine *Engine
	desc   *registry.Descriptor
}

// Define registers T in the engine's registry, under name when given, and
// returns its model. A nil engine uses NewEngine().
func Define[T any](e *Engine, name ...string) (*Model[T], error) {
	if e == nil {
		e = NewEngine()
	}

	var n string
	if len(name) > 0 {
		n = name[0]
	}
	desc, err := e.opts.Registry.Register(reflect.TypeFor[T](), n)
	if err != nil {
		return nil, err
	}
	return &Model[T]{engine: e, desc: desc}, nil
}

// Descriptor returns the registered descriptor of T
func (m *Model[T]) Descriptor() *registry.Descriptor {
	return m.desc
}

// Field declares the construction rule of one field of T
func (m *Model[T]) Field(name string, f registry.Factory, opts ...registry.Option) error {
	return m.engine.opts.Registry.DefineField(m.desc.Type, name, f, opts...)
}

// MustField is like Field but panics on error. It returns the model so
// declarations can be chained.
func (m *Model[T]) MustField(name string, f registry.Factory, opts ...registry.Option) *Model[T] {
	if err := m.Field(name, f, opts...); err != nil {
		panic(fmt.Sprintf("model %s: %v", m.desc.Name, err))
	}
	return m
}

// Rules returns the field rules of T in declaration order
func (m *Model[T]) Rules() []registry.FieldRule {
	return m.engine.opts.Registry.FieldsOf(m.desc.Type)
}

// New hydrates a *T from raw
func (m *Model[T]) New(raw any) (*T, error) {
	inst, err := m.engine.hydrate(m.desc, raw, Trace{}, m.desc.Name)
	if err != nil {
		return nil, err
	}
	return inst.Interface().(*T), nil
}

// MustNew is like New but panics on error
func (m *Model[T]) MustNew(raw any) *T {
	out, err := m.New(raw)
	if err != nil {
		panic(err)
	}
	return out
}

// Clone rebuilds instance. A nil instance clones to nil.
func (m *Model[T]) Clone(instance *T) (*T, error) {
	if instance == nil {
		return nil, nil
	}
	return m.New(instance)
}

// Catalog keeps one Model per type for a single engine
type Catalog struct {
	engine *Engine
	mu     sync.RWMutex
	models map[reflect.Type]any
}

// NewCatalog creates a Catalog over e. A nil engine uses NewEngine().
func NewCatalog(e *Engine) *Catalog {
	if e == nil {
		e = NewEngine()
	}
	return &Catalog{
		engine: e,
		models: make(map[reflect.Type]any),
	}
}

// Engine returns the catalog's engine
func (c *Catalog) Engine() *Engine {
	return c.engine
}

// ModelOf returns the model of T from the catalog, registering T under its Go
// type name the first time it is asked for.
func ModelOf[T any](c *Catalog) (*Model[T], error) {
	typ := reflect.TypeFor[T]()

	c.mu.RLock()
	m, exists := c.models[typ]
	c.mu.RUnlock()
	if exists {
		return m.(*Model[T]), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if m, exists := c.models[typ]; exists {
		return m.(*Model[T]), nil
	}

	model, err := Define[T](c.engine)
	if err != nil {
		return nil, err
	}
	c.models[typ] = model
	return model, nil
}

// Names lists the registered names of the catalog's models
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.models))
	for typ := range c.models {
		if desc, ok := c.engine.opts.Registry.Lookup(typ); ok {
			names = append(names, desc.Name)
		}
	}
	sort.Strings(names)
	return names
}
