/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package payload

import (
	"reflect"
	"slices"
	"strings"
	"sync"
)

// TagName is the struct tag consulted first when naming payload keys.
const TagName = "primed"

// Field is an exported struct field addressable from a payload.
type Field struct {
	// Name is the payload key for the field.
	Name string
	reflect.StructField
}

var fieldCache sync.Map // reflect.Type -> []Field

// FieldName returns the payload key for a struct field.
// It returns "-" when the field is excluded by its tag.
func FieldName(sf reflect.StructField) string {
	for _, tag := range []string{TagName, "json"} {
		if v, ok := sf.Tag.Lookup(tag); ok {
			name, _, _ := strings.Cut(v, ",")
			if name != "" {
				return name
			}
		}
	}
	return sf.Name
}

// Fields returns the payload-addressable fields of struct type t, including
// fields promoted from embedded structs. Fields reached through embedded
// pointers are skipped since they cannot be set on a fresh instance.
func Fields(t reflect.Type) []Field {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]Field)
	}

	var (
		fields []Field
		named  [][]int
	)
	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() || throughPointer(t, sf.Index) || insideAny(named, sf.Index) {
			continue
		}
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			if !hasNameTag(sf) {
				continue
			}
			// a tagged embed is a single named field, like encoding/json
			named = append(named, sf.Index)
		}
		name := FieldName(sf)
		if name == "-" {
			continue
		}
		fields = append(fields, Field{Name: name, StructField: sf})
	}

	cached, _ := fieldCache.LoadOrStore(t, fields)
	return cached.([]Field)
}

// LookupField finds the field of t addressed by key: an exact payload name
// match wins, otherwise the first case-insensitive match on either the payload
// name or the Go field name.
func LookupField(t reflect.Type, key string) (Field, bool) {
	fields := Fields(t)
	for _, f := range fields {
		if f.Name == key {
			return f, true
		}
	}
	for _, f := range fields {
		if strings.EqualFold(f.Name, key) || strings.EqualFold(f.StructField.Name, key) {
			return f, true
		}
	}
	return Field{}, false
}

func hasNameTag(sf reflect.StructField) bool {
	return FieldName(sf) != sf.Name
}

func insideAny(prefixes [][]int, index []int) bool {
	for _, p := range prefixes {
		if len(index) > len(p) && slices.Equal(index[:len(p)], p) {
			return true
		}
	}
	return false
}

func throughPointer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		sf := t.Field(i)
		if sf.Type.Kind() == reflect.Pointer {
			return true
		}
		t = sf.Type
	}
	return false
}
