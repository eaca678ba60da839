/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"

	"github.com/suparena/primed/errors"
	"github.com/suparena/primed/payload"
)

// Options are the per-field construction options.
type Options struct {
	// Required fields absent from the payload receive a default value.
	Required bool
	// Array fields hold a slice of produced values.
	Array bool
}

// DefaultOptions returns the options applied before caller overrides.
func DefaultOptions() Options {
	return Options{
		Required: true,
		Array:    false,
	}
}

// Optional marks a field as not required.
func Optional() Option {
	return Required(false)
}

// Required sets whether a field is required.
func Required(required bool) Option {
	return optionFunc(func(s *settings) {
		s.options.Required = required
	})
}

// Array marks a field as array-valued.
func Array() Option {
	return optionFunc(func(s *settings) {
		s.options.Array = true
	})
}

// FieldRule is the construction rule of one struct field.
type FieldRule struct {
	// Name is the payload key of the field.
	Name    string
	Field   reflect.StructField
	Factory Factory
	Options Options
}

// Elem returns the type each produced value is stored as: the slice element
// for array fields, the field type otherwise.
func (r FieldRule) Elem() reflect.Type {
	if r.Options.Array {
		return r.Field.Type.Elem()
	}
	return r.Field.Type
}

type fieldSet struct {
	rules []FieldRule
	index map[string]int
}

// DefineField records the rule for the field of t addressed by name.
// Redefining a field replaces its rule and keeps its declaration position.
func (r *Registry) DefineField(t reflect.Type, name string, f Factory, opts ...Option) error {
	t, err := structType(t)
	if err != nil {
		return err
	}

	s := collect(opts)
	rule, err := buildRule(t, name, f, s.options)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.fields[t]
	if !ok {
		set = &fieldSet{index: make(map[string]int)}
		r.fields[t] = set
	}
	if i, exists := set.index[rule.Name]; exists {
		set.rules[i] = rule
		return nil
	}
	set.index[rule.Name] = len(set.rules)
	set.rules = append(set.rules, rule)
	return nil
}

func buildRule(t reflect.Type, name string, f Factory, options Options) (FieldRule, error) {
	fail := func(format string, args ...any) (FieldRule, error) {
		return FieldRule{}, errors.NewFactoryError(t.Name(), name, fmt.Sprintf(format, args...))
	}

	if f.err != nil {
		return fail("%v", f.err)
	}

	field, ok := payload.LookupField(t, name)
	if !ok {
		return fail("%s has no exported field matching %q", t, name)
	}

	rule := FieldRule{
		Name:    field.Name,
		Field:   field.StructField,
		Factory: f,
		Options: options,
	}
	if options.Array && (field.Type.Kind() != reflect.Slice || !payload.IsSequenceType(field.Type)) {
		return fail("array field must be a slice, got %s", field.Type)
	}

	elem := rule.Elem()
	switch f.kind {
	case KindRef:
		if f.name == "" {
			return fail("reference has no type name")
		}
	case KindType:
		if !Holds(elem, f.typ) {
			return fail("%s cannot hold an instance of %s", elem, f.typ)
		}
	case KindTransformer:
		if !Accepts(elem, f.transformer.Out()) {
			return fail("result %s is not assignable to %s", f.transformer.Out(), elem)
		}
	default:
		return fail("factory is empty")
	}
	return rule, nil
}

// FieldsOf returns the rules of t in declaration order. It returns an empty
// slice when t declares none.
func (r *Registry) FieldsOf(t reflect.Type) []FieldRule {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.fields[t]
	if !ok {
		return []FieldRule{}
	}
	rules := make([]FieldRule, len(set.rules))
	copy(rules, set.rules)
	return rules
}

// Holds reports whether a field element of type elem can store an instance of
// the struct type t, either by value or through a pointer.
func Holds(elem, t reflect.Type) bool {
	return elem == t || (elem.Kind() == reflect.Pointer && elem.Elem() == t)
}

// Accepts reports whether a transformer result of type out can be stored in a
// field element of type elem. Interface results are checked when produced.
func Accepts(elem, out reflect.Type) bool {
	switch {
	case out.Kind() == reflect.Interface:
		return true
	case out.AssignableTo(elem):
		return true
	case out.Kind() == reflect.Pointer && out.Elem().AssignableTo(elem):
		return true
	case elem.Kind() == reflect.Pointer && out.AssignableTo(elem.Elem()):
		return true
	}
	return false
}

// DefineField records a rule for the field name of T, in Default unless In is given.
func DefineField[T any](name string, f Factory, opts ...Option) error {
	s := collect(opts)
	return s.registry.DefineField(reflect.TypeFor[T](), name, f, opts...)
}

// MustDefineField is like DefineField but panics on error. It is meant for
// init-time declarations next to the type.
//
//	func init() {
//	    registry.MustDefineField[Baz]("mike", registry.Transform(factories.Decimal))
//	    registry.MustDefineField[Baz]("bar", registry.Ref("Bar"))
//	}
func MustDefineField[T any](name string, f Factory, opts ...Option) {
	if err := DefineField[T](name, f, opts...); err != nil {
		panic(fmt.Sprintf("field registry: %v", err))
	}
}

// FieldsOf returns the rules of T, from Default unless In is given.
func FieldsOf[T any](opts ...Option) []FieldRule {
	s := collect(opts)
	return s.registry.FieldsOf(reflect.TypeFor[T]())
}
