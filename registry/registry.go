/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"
)

// Registry holds type descriptors, field rules and named transformers.
// It is safe for concurrent use, although it is normally populated once
// during initialization and only read afterwards.
type Registry struct {
	mu           sync.RWMutex
	byName       map[string]*Descriptor
	byType       map[reflect.Type]*Descriptor
	fields       map[reflect.Type]*fieldSet
	transformers map[string]*Transformer
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		byName:       make(map[string]*Descriptor),
		byType:       make(map[reflect.Type]*Descriptor),
		fields:       make(map[reflect.Type]*fieldSet),
		transformers: make(map[string]*Transformer),
	}
}

// Default is the process-wide registry used by the package-level functions.
var Default = New()

// Option configures a registration call. Options apply to both type and
// field registration where meaningful.
type Option interface {
	apply(*settings)
}

type settings struct {
	registry *Registry
	name     string
	options  Options
}

type optionFunc func(*settings)

func (f optionFunc) apply(s *settings) { f(s) }

// In targets r instead of Default.
func In(r *Registry) Option {
	return optionFunc(func(s *settings) {
		if r != nil {
			s.registry = r
		}
	})
}

func collect(opts []Option) settings {
	s := settings{registry: Default, options: DefaultOptions()}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&s)
		}
	}
	return s
}
