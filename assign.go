/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package primed

import (
	"fmt"
	"reflect"

	"github.com/suparena/primed/errors"
	"github.com/suparena/primed/registry"
)

// store writes produced values into field: all of them as a new slice for
// array rules, the single value otherwise.
func store(field reflect.Value, values []reflect.Value, desc *registry.Descriptor, rule registry.FieldRule, path string) error {
	var err error
	if rule.Options.Array {
		err = assignSlice(field, values)
	} else {
		err = assign(field, values[0])
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, errors.NewFieldTypeError(desc.Name, rule.Name, err))
	}
	return nil
}

// assign stores v in dst, dereferencing or taking the address of v when only
// the pointer or the pointee fits.
func assign(dst, v reflect.Value) error {
	if v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			v = reflect.Value{}
		} else {
			v = v.Elem()
		}
	}
	if !v.IsValid() {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	t := v.Type()
	switch {
	case t.AssignableTo(dst.Type()):
		dst.Set(v)
	case t.Kind() == reflect.Pointer && t.Elem().AssignableTo(dst.Type()):
		if v.IsNil() {
			dst.Set(reflect.Zero(dst.Type()))
		} else {
			dst.Set(v.Elem())
		}
	case dst.Kind() == reflect.Pointer && t.AssignableTo(dst.Type().Elem()):
		ptr := reflect.New(dst.Type().Elem())
		ptr.Elem().Set(v)
		dst.Set(ptr)
	default:
		return fmt.Errorf("%s is not assignable to %s", t, dst.Type())
	}
	return nil
}

func assignSlice(dst reflect.Value, values []reflect.Value) error {
	slice := reflect.MakeSlice(dst.Type(), len(values), len(values))
	for i, v := range values {
		if err := assign(slice.Index(i), v); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	dst.Set(slice)
	return nil
}
