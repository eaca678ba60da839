/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"path"
	"reflect"
	"runtime"

	"github.com/suparena/primed/errors"
	"github.com/suparena/primed/payload"
)

var errorType = reflect.TypeFor[error]()

// Transformer is a plain value factory: a function turning one raw value, or
// no value at all, into a typed field value.
type Transformer struct {
	fn       reflect.Value
	name     string
	arg      reflect.Type
	variadic bool
	out      reflect.Type
	hasErr   bool
}

// ParseTransformer inspects fn and returns a Transformer if it has a
// recognizable shape.
//
// Supports:
//   - func() R
//   - func(A) R
//   - func(...A) R
//
// each optionally returning (R, error).
func ParseTransformer(fn any) (*Transformer, error) {
	if fn == nil {
		return nil, errors.NewFactoryError("", "", "transformer is nil")
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return nil, errors.NewFactoryError("", "", fmt.Sprintf("transformer is not a function: %s", fnType))
	}
	if fnVal.IsNil() {
		return nil, errors.NewFactoryError("", "", "transformer is nil")
	}
	if fnType.NumIn() > 1 {
		return nil, errors.NewFactoryError("", "", fmt.Sprintf("transformer takes %d arguments, at most 1 allowed", fnType.NumIn()))
	}

	t := &Transformer{
		fn:       fnVal,
		name:     funcName(fnVal),
		variadic: fnType.IsVariadic(),
	}

	if fnType.NumIn() == 1 {
		t.arg = fnType.In(0)
		if t.variadic {
			t.arg = t.arg.Elem()
		}
	}

	switch fnType.NumOut() {
	default:
		return nil, errors.NewFactoryError("", "", fmt.Sprintf("transformer returns %d values, want R or (R, error)", fnType.NumOut()))
	case 1:
		if fnType.Out(0) == errorType {
			return nil, errors.NewFactoryError("", "", "transformer returns only an error")
		}
	case 2:
		if fnType.Out(1) != errorType {
			return nil, errors.NewFactoryError("", "", fmt.Sprintf("second transformer result must be error, got %s", fnType.Out(1)))
		}
		t.hasErr = true
	}
	t.out = fnType.Out(0)

	return t, nil
}

// Name returns the function name used in errors and logs.
func (t *Transformer) Name() string { return t.name }

// Out returns the transformer's result type.
func (t *Transformer) Out() reflect.Type { return t.out }

// Arg returns the argument type, or nil for transformers taking no argument.
func (t *Transformer) Arg() reflect.Type { return t.arg }

// Call invokes the transformer. When present is false the value is ignored:
// variadic and zero-argument transformers receive no argument, unary ones
// receive the zero value of their argument type. Zero-argument transformers
// also ignore present values.
func (t *Transformer) Call(v any, present bool) (reflect.Value, error) {
	var args []reflect.Value
	switch {
	case t.arg == nil:
	case !present && t.variadic:
	case !present:
		args = []reflect.Value{reflect.Zero(t.arg)}
	default:
		arg, err := payload.Coerce(v, t.arg)
		if err != nil {
			return reflect.Value{}, errors.NewTransformError(t.name, err)
		}
		args = []reflect.Value{arg}
	}

	out := t.fn.Call(args)
	if t.hasErr && !out[1].IsNil() {
		return reflect.Value{}, errors.NewTransformError(t.name, out[1].Interface().(error))
	}
	return out[0], nil
}

func funcName(fn reflect.Value) string {
	rf := runtime.FuncForPC(fn.Pointer())
	if rf == nil {
		return fn.Type().String()
	}
	_, name := path.Split(rf.Name())
	return name
}
