/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
)

// Kind tags the variant held by a Factory.
type Kind int

const (
	KindInvalid Kind = iota
	// KindRef is a named forward reference resolved lazily through the Registry.
	KindRef
	// KindType is a direct reference to a hydratable struct type.
	KindType
	// KindTransformer is a plain value transformer.
	KindTransformer
)

func (k Kind) String() string {
	switch k {
	case KindRef:
		return "ref"
	case KindType:
		return "type"
	case KindTransformer:
		return "transformer"
	default:
		return "invalid"
	}
}

// Factory produces a field's value. The variant is decided once, when the
// factory is built, so hydration never inspects functions or types to tell a
// nested model from a transformer.
type Factory struct {
	kind        Kind
	name        string
	typ         reflect.Type
	transformer *Transformer
	err         error
}

// Ref returns a factory naming a hydratable type that may not be registered yet.
func Ref(name string) Factory {
	return Factory{kind: KindRef, name: name}
}

// TypeOf returns a factory for the hydratable struct type T.
func TypeOf[T any]() Factory {
	return TypeFactory(reflect.TypeFor[T]())
}

// TypeFactory returns a factory for the hydratable struct type t. Pointer
// types are dereferenced.
func TypeFactory(t reflect.Type) Factory {
	if t == nil {
		return Factory{err: fmt.Errorf("nil type")}
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return Factory{err: fmt.Errorf("%s is not a struct type", t)}
	}
	return Factory{kind: KindType, typ: t, name: t.Name()}
}

// Transform returns a factory wrapping the function fn. An unsupported
// signature is reported when the factory is attached to a field.
func Transform(fn any) Factory {
	t, err := ParseTransformer(fn)
	if err != nil {
		return Factory{err: err}
	}
	return Using(t)
}

// Using returns a factory for an already parsed transformer.
func Using(t *Transformer) Factory {
	return Factory{kind: KindTransformer, name: t.Name(), transformer: t}
}

// Kind returns the variant tag.
func (f Factory) Kind() Kind { return f.kind }

// Name returns the referenced type name, or the transformer's function name.
func (f Factory) Name() string { return f.name }

// Type returns the struct type of a KindType factory.
func (f Factory) Type() reflect.Type { return f.typ }

// Transformer returns the transformer of a KindTransformer factory.
func (f Factory) Transformer() *Transformer { return f.transformer }

// Hydratable reports whether the factory builds nested instances.
func (f Factory) Hydratable() bool {
	return f.kind == KindRef || f.kind == KindType
}

// Err returns the construction error of an invalid factory.
func (f Factory) Err() error { return f.err }

func (f Factory) String() string {
	if f.kind == KindInvalid {
		return "invalid"
	}
	return fmt.Sprintf("%s(%s)", f.kind, f.name)
}
