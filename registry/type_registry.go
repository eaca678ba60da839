/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/suparena/primed/errors"
)

// Descriptor identifies a hydratable struct type by a stable name.
type Descriptor struct {
	Name string
	Type reflect.Type
}

// New allocates a zero instance of the described type and returns a pointer to it.
func (d *Descriptor) New() reflect.Value {
	return reflect.New(d.Type)
}

func (d *Descriptor) String() string {
	return d.Name
}

// WithName registers a type under name instead of its Go type name.
func WithName(name string) Option {
	return optionFunc(func(s *settings) {
		s.name = name
	})
}

// Register records t under name, or under the Go type name when name is empty.
// The last registration for a name wins, and a type registered under several
// names is looked up by reflect.Type through the most recent one.
func (r *Registry) Register(t reflect.Type, name string) (*Descriptor, error) {
	t, err := structType(t)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = t.Name()
	}
	if name == "" {
		return nil, errors.NewValidationError("name", fmt.Sprintf("anonymous type %s needs an explicit name", t))
	}

	desc := &Descriptor{Name: name, Type: t}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[name] = desc
	r.byType[t] = desc
	return desc, nil
}

// Resolve returns the descriptor registered under name.
func (r *Registry) Resolve(name string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, ok := r.byName[name]
	if !ok {
		return nil, errors.NewUnknownTypeError(name)
	}
	return desc, nil
}

// Lookup returns the descriptor most recently registered for t.
func (r *Registry) Lookup(t reflect.Type) (*Descriptor, bool) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, ok := r.byType[t]
	return desc, ok
}

// Describe returns the registered descriptor for t, or an unregistered one
// named after the Go type. Direct type references do not need registration.
func (r *Registry) Describe(t reflect.Type) (*Descriptor, error) {
	if desc, ok := r.Lookup(t); ok {
		return desc, nil
	}
	t, err := structType(t)
	if err != nil {
		return nil, err
	}
	return &Descriptor{Name: t.Name(), Type: t}, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func structType(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, errors.NewValidationError("type", "nil type")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.NewValidationError("type", fmt.Sprintf("%s is not a struct type", t))
	}
	return t, nil
}

// RegisterType registers T, in Default unless In is given. It panics when T
// is not a struct, the same way a duplicate init-time registration would be
// a programming error.
//
//	func init() {
//	    registry.RegisterType[Baz]()
//	    registry.RegisterType[Bar](registry.WithName("LegacyBar"))
//	}
func RegisterType[T any](opts ...Option) *Descriptor {
	s := collect(opts)
	desc, err := s.registry.Register(reflect.TypeFor[T](), s.name)
	if err != nil {
		panic(fmt.Sprintf("type registry: %v", err))
	}
	return desc
}

// Resolve returns the descriptor registered in Default under name.
func Resolve(name string) (*Descriptor, error) {
	return Default.Resolve(name)
}
