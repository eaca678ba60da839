/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package primed

import (
	"reflect"
	"strings"
)

// Trace lists the types under construction on the current recursive path,
// outermost first. It is a value: With returns a new Trace and never changes
// the receiver, so sibling fields cannot observe each other's descent.
type Trace struct {
	types []reflect.Type
}

// With returns a copy of the trace extended with t.
func (t Trace) With(typ reflect.Type) Trace {
	next := make([]reflect.Type, len(t.types), len(t.types)+1)
	copy(next, t.types)
	return Trace{types: append(next, typ)}
}

// Contains reports whether typ is under construction.
func (t Trace) Contains(typ reflect.Type) bool {
	for _, seen := range t.types {
		if seen == typ {
			return true
		}
	}
	return false
}

// Len returns the nesting depth.
func (t Trace) Len() int {
	return len(t.types)
}

func (t Trace) String() string {
	names := make([]string, len(t.types))
	for i, typ := range t.types {
		names[i] = typ.Name()
	}
	return strings.Join(names, " > ")
}
