/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package primed

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/suparena/primed/config"
	"github.com/suparena/primed/payload"
	"github.com/suparena/primed/registry"
	"github.com/suparena/primed/schema"
)

// Defaulter is implemented by types whose plain fields start from non-zero
// values. SetDefaults runs on every fresh instance before the payload is applied.
// A nil plain value counts as absent, so Clone restores the default of a
// pointer, slice or map field that was set to nil after SetDefaults.
type Defaulter interface {
	SetDefaults()
}

// Engine hydrates registered types. It holds no mutable state of its own and
// is safe for concurrent use once its registry is populated.
type Engine struct {
	opts Options
	log  *zap.Logger
}

// NewEngine creates an Engine with the given options.
func NewEngine(opts ...Option) *Engine {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e := &Engine{opts: o, log: o.Logger.Named("primed")}
	e.log.Debug("Engine created",
		zap.Stringer("version", GetVersionInfo()),
		zap.Stringer("cyclePolicy", o.CyclePolicy),
		zap.Int("maxDepth", o.MaxDepth))
	return e
}

// NewEngineFromConfig creates an Engine from configuration. When the
// configuration names a schema file it is loaded into the engine's registry.
// Explicit options are applied after the configured ones.
func NewEngineFromConfig(cfg config.Config, opts ...Option) (*Engine, error) {
	configured, err := FromConfig(cfg)
	if err != nil {
		return nil, err
	}

	e := NewEngine(append(configured, opts...)...)
	if cfg.SchemaPath != "" {
		if err := schema.LoadFile(e.opts.Registry, cfg.SchemaPath); err != nil {
			return nil, fmt.Errorf("failed to load schema: %w", err)
		}
		e.log.Debug("Schema loaded", zap.String("path", cfg.SchemaPath))
	}
	return e, nil
}

// FromConfig translates configuration into engine options.
func FromConfig(cfg config.Config) ([]Option, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	policy, err := ParseCyclePolicy(cfg.CyclePolicy)
	if err != nil {
		return nil, err
	}
	logger, err := cfg.Logger()
	if err != nil {
		return nil, err
	}

	return []Option{
		WithCyclePolicy(policy),
		WithMaxDepth(cfg.MaxDepth),
		WithLogger(logger),
	}, nil
}

// Registry returns the registry the engine reads from.
func (e *Engine) Registry() *registry.Registry {
	return e.opts.Registry
}

// Hydrate builds an instance of the type registered under name from raw,
// which may be nil, a payload map or an instance. It returns a pointer to the
// new instance.
func (e *Engine) Hydrate(name string, raw any) (any, error) {
	desc, err := e.opts.Registry.Resolve(name)
	if err != nil {
		return nil, err
	}
	inst, err := e.hydrate(desc, raw, Trace{}, desc.Name)
	if err != nil {
		return nil, err
	}
	return inst.Interface(), nil
}

// HydrateType is like Hydrate but addresses the type directly. The type does
// not need to be registered.
func (e *Engine) HydrateType(t reflect.Type, raw any) (any, error) {
	desc, err := e.opts.Registry.Describe(t)
	if err != nil {
		return nil, err
	}
	inst, err := e.hydrate(desc, raw, Trace{}, desc.Name)
	if err != nil {
		return nil, err
	}
	return inst.Interface(), nil
}

// Clone rebuilds instance by hydrating its own type with the instance itself
// as payload. Hydratable fields are rebuilt; plain fields are copied by
// assignment. A nil instance clones to nil.
func (e *Engine) Clone(instance any) (any, error) {
	if payload.IsAbsent(instance) {
		return nil, nil
	}
	return e.HydrateType(reflect.TypeOf(instance), instance)
}

// New hydrates a *T from raw using an engine built from opts.
//
//	baz, err := primed.New[Baz](map[string]any{"mike": 5})
func New[T any](raw any, opts ...Option) (*T, error) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("primed: New needs a struct type, got %s", t)
	}
	out, err := NewEngine(opts...).HydrateType(t, raw)
	if err != nil {
		return nil, err
	}
	return out.(*T), nil
}

// MustNew is like New but panics on error.
func MustNew[T any](raw any, opts ...Option) *T {
	out, err := New[T](raw, opts...)
	if err != nil {
		panic(err)
	}
	return out
}

// Clone returns a deep rebuild of instance.
func Clone[T any](instance *T, opts ...Option) (*T, error) {
	if instance == nil {
		return nil, nil
	}
	return New[T](instance, opts...)
}
