/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package payload

import (
	"fmt"
	"reflect"

	"github.com/suparena/primed/errors"
)

// Payload is the raw, possibly partial input for one instance.
type Payload map[string]any

// Lookup returns the value stored under key and whether it is supplied.
// Absent values report false even when the key exists.
func (p Payload) Lookup(key string) (any, bool) {
	v, ok := p[key]
	if !ok || IsAbsent(v) {
		return nil, false
	}
	return v, true
}

// Keys returns the payload keys in no particular order.
func (p Payload) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	return keys
}

// Of normalizes v into a Payload.
//
// Accepted inputs:
//   - nil and nil pointers yield a nil Payload
//   - Payload and map[string]any are returned as-is
//   - any other map with string keys is copied
//   - structs and pointers to structs are read field by field, keyed by FieldName
func Of(v any) (Payload, error) {
	if IsAbsent(v) {
		return nil, nil
	}

	switch p := v.(type) {
	case Payload:
		return p, nil
	case map[string]any:
		return Payload(p), nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, errors.NewValidationError("", fmt.Sprintf("payload map keys must be strings, got %s", rv.Type().Key()))
		}
		out := make(Payload, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil

	case reflect.Struct:
		return fromStruct(rv), nil
	}

	return nil, errors.NewValidationError("", fmt.Sprintf("cannot use %s as a payload", rv.Type()))
}

func fromStruct(rv reflect.Value) Payload {
	fields := Fields(rv.Type())
	out := make(Payload, len(fields))
	for _, f := range fields {
		out[f.Name] = rv.FieldByIndex(f.Index).Interface()
	}
	return out
}

// IsAbsent reports whether v counts as "no value supplied".
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// IsSequence reports whether v is a slice or array other than []byte.
func IsSequence(v any) bool {
	if v == nil {
		return false
	}
	return isSequenceType(reflect.TypeOf(v))
}

func isSequenceType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return t.Elem().Kind() != reflect.Uint8
	}
	return false
}

// IsSequenceType reports whether values of t are sequences.
func IsSequenceType(t reflect.Type) bool {
	return isSequenceType(t)
}

// Elements normalizes v to a list of raw elements. Scalars become a single
// element list so array and scalar fields share one code path.
func Elements(v any) []any {
	if !IsSequence(v) {
		return []any{v}
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
