/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package primed

import (
	"fmt"
	"reflect"
	"slices"

	"go.uber.org/zap"

	"github.com/suparena/primed/errors"
	"github.com/suparena/primed/payload"
	"github.com/suparena/primed/registry"
)

// hydrate builds one instance of desc. trace holds the ancestors of this
// instance; path names it in errors and logs.
func (e *Engine) hydrate(desc *registry.Descriptor, raw any, trace Trace, path string) (reflect.Value, error) {
	if e.opts.MaxDepth > 0 && trace.Len() >= e.opts.MaxDepth {
		return reflect.Value{}, fmt.Errorf("%s: %w (%d)", path, errors.ErrMaxDepthExceeded, e.opts.MaxDepth)
	}

	p, err := payload.Of(raw)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%s: %w", path, err)
	}

	e.log.Debug("Hydrating", zap.String("type", desc.Name), zap.String("path", path), zap.Int("depth", trace.Len()))

	inst := desc.New()
	if d, ok := inst.Interface().(Defaulter); ok {
		d.SetDefaults()
	}
	obj := inst.Elem()
	rules := e.opts.Registry.FieldsOf(desc.Type)

	if err := assignPlain(obj, desc, rules, p, path); err != nil {
		return reflect.Value{}, err
	}

	// Every rule's shape is checked before any field is produced.
	for _, rule := range rules {
		if err := checkShape(desc, rule, p, path); err != nil {
			return reflect.Value{}, err
		}
	}

	next := trace.With(desc.Type)
	for _, rule := range rules {
		if err := e.populate(obj, desc, rule, p, trace, next, path); err != nil {
			return reflect.Value{}, err
		}
	}
	return inst, nil
}

// assignPlain copies payload keys that no rule covers onto the fields the
// struct declares. Unknown keys and absent values are ignored.
func assignPlain(obj reflect.Value, desc *registry.Descriptor, rules []registry.FieldRule, p payload.Payload, path string) error {
	if len(p) == 0 {
		return nil
	}

	ruled := make(map[string]struct{}, len(rules))
	for _, rule := range rules {
		ruled[rule.Field.Name] = struct{}{}
	}

	keys := p.Keys()
	slices.Sort(keys)
	for _, key := range keys {
		field, ok := payload.LookupField(desc.Type, key)
		if !ok {
			continue
		}
		if _, isRuled := ruled[field.StructField.Name]; isRuled {
			continue
		}
		raw, supplied := p.Lookup(key)
		if !supplied {
			continue
		}

		v, err := payload.Coerce(raw, field.Type)
		if err != nil {
			return fmt.Errorf("%s: %w", path, errors.NewFieldTypeError(desc.Name, field.Name, err))
		}
		obj.FieldByIndex(field.Index).Set(v)
	}
	return nil
}

// lookupRule finds the value supplied for a rule's field. Keys resolve to
// fields the same way plain keys do, so an exact match on the rule name or Go
// field name wins, then the first key in sorted order that payload.LookupField
// maps onto the field.
func lookupRule(desc *registry.Descriptor, p payload.Payload, rule registry.FieldRule) (any, bool) {
	if v, ok := p.Lookup(rule.Name); ok {
		return v, true
	}
	if rule.Field.Name != rule.Name {
		if v, ok := p.Lookup(rule.Field.Name); ok {
			return v, true
		}
	}

	keys := p.Keys()
	slices.Sort(keys)
	for _, key := range keys {
		if key == rule.Name || key == rule.Field.Name {
			continue
		}
		field, ok := payload.LookupField(desc.Type, key)
		if !ok || !slices.Equal(field.Index, rule.Field.Index) {
			continue
		}
		if v, ok := p.Lookup(key); ok {
			return v, true
		}
	}
	return nil, false
}

func checkShape(desc *registry.Descriptor, rule registry.FieldRule, p payload.Payload, path string) error {
	v, ok := lookupRule(desc, p, rule)
	if !ok {
		return nil
	}

	seq := payload.IsSequence(v)
	switch {
	case rule.Options.Array && !seq:
		return fmt.Errorf("%s: %w", path, errors.NewShapeError(desc.Name, rule.Name, true))
	case !rule.Options.Array && seq:
		return fmt.Errorf("%s: %w", path, errors.NewShapeError(desc.Name, rule.Name, false))
	}
	return nil
}

func (e *Engine) populate(obj reflect.Value, desc *registry.Descriptor, rule registry.FieldRule, p payload.Payload, trace, next Trace, path string) error {
	fieldPath := path + "." + rule.Name

	target, err := e.target(desc, rule)
	if err != nil {
		return fmt.Errorf("%s: %w", fieldPath, err)
	}
	field := obj.FieldByIndex(rule.Field.Index)

	if v, ok := lookupRule(desc, p, rule); ok {
		elems := payload.Elements(v)
		values := make([]reflect.Value, 0, len(elems))
		for i, el := range elems {
			elemPath := fieldPath
			if rule.Options.Array {
				elemPath = fmt.Sprintf("%s[%d]", fieldPath, i)
			}
			out, err := e.produce(target, rule, el, next, elemPath)
			if err != nil {
				return err
			}
			values = append(values, out)
		}

		if rule.Options.Array {
			return store(field, values, desc, rule, fieldPath)
		}
		return store(field, values[len(values)-1:], desc, rule, fieldPath)
	}

	if rule.Options.Required {
		if target != nil && e.cyclic(target.Type, trace, next) {
			e.log.Warn("Required field left unset, type already under construction",
				zap.String("field", fieldPath),
				zap.String("type", target.Name),
				zap.Stringer("trace", next))
			return nil
		}

		out, err := e.produce(target, rule, nil, next, fieldPath)
		if err != nil {
			return err
		}
		return store(field, []reflect.Value{out}, desc, rule, fieldPath)
	}

	if rule.Options.Array {
		field.Set(reflect.MakeSlice(field.Type(), 0, 0))
		return nil
	}
	field.Set(reflect.Zero(field.Type()))
	return nil
}

// target resolves the descriptor a hydratable rule builds. It returns nil for
// transformer rules.
func (e *Engine) target(desc *registry.Descriptor, rule registry.FieldRule) (*registry.Descriptor, error) {
	switch rule.Factory.Kind() {
	case registry.KindRef:
		t, err := e.opts.Registry.Resolve(rule.Factory.Name())
		if err != nil {
			return nil, err
		}
		if !registry.Holds(rule.Elem(), t.Type) {
			return nil, errors.NewFactoryError(desc.Name, rule.Name,
				fmt.Sprintf("%q resolves to %s, which %s cannot hold", rule.Factory.Name(), t.Type, rule.Elem()))
		}
		return t, nil

	case registry.KindType:
		return e.opts.Registry.Describe(rule.Factory.Type())
	}
	return nil, nil
}

func (e *Engine) cyclic(t reflect.Type, trace, next Trace) bool {
	if e.opts.CyclePolicy == CycleLenient {
		return trace.Contains(t)
	}
	return next.Contains(t)
}

func (e *Engine) produce(target *registry.Descriptor, rule registry.FieldRule, el any, next Trace, path string) (reflect.Value, error) {
	if target != nil {
		return e.hydrate(target, el, next, path)
	}

	out, err := rule.Factory.Transformer().Call(el, !payload.IsAbsent(el))
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
