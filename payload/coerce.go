/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
)

var numberType = reflect.TypeFor[json.Number]()

// Coerce converts a raw value into a value of type to.
//
// Assignable values pass through untouched so references are shared. Numbers,
// including json.Number, convert between numeric kinds only when the value
// fits the target exactly: fractions into integer kinds, negatives into
// unsigned kinds and out-of-range values are errors. Strings convert to named
// string types. Everything else is decoded with mapstructure, which covers
// nested maps into plain structs, []any into typed slices and RFC 3339 strings
// into time.Time.
func Coerce(v any, to reflect.Type) (reflect.Value, error) {
	if IsAbsent(v) {
		return reflect.Zero(to), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(to) {
		if to.Kind() == reflect.Interface {
			out := reflect.New(to).Elem()
			out.Set(rv)
			return out, nil
		}
		return rv, nil
	}

	if rv.Type() == numberType {
		n, err := numberValue(rv.Interface().(json.Number))
		if err != nil {
			return reflect.Value{}, err
		}
		rv = n
	}

	switch {
	case isNumeric(rv.Kind()) && isNumeric(to.Kind()):
		return convertNumber(rv, to)
	case rv.Kind() == reflect.String && to.Kind() == reflect.String:
		return rv.Convert(to), nil
	}

	out := reflect.New(to)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			numberHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		Result:  out.Interface(),
		TagName: "json",
	})
	if err != nil {
		return reflect.Value{}, err
	}
	if err := decoder.Decode(rv.Interface()); err != nil {
		return reflect.Value{}, fmt.Errorf("cannot convert %T to %s: %w", v, to, err)
	}
	return out.Elem(), nil
}

// numberHook applies the checked numeric conversion to values nested inside
// maps and slices.
func numberHook(from, to reflect.Type, data any) (any, error) {
	if !isNumeric(to.Kind()) {
		return data, nil
	}
	rv := reflect.ValueOf(data)
	if from == numberType {
		n, err := numberValue(data.(json.Number))
		if err != nil {
			return nil, err
		}
		rv = n
	} else if !isNumeric(from.Kind()) {
		return data, nil
	}

	out, err := convertNumber(rv, to)
	if err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// numberValue parses n into the narrowest of int64, uint64 and float64 that
// holds it without loss.
func numberValue(n json.Number) (reflect.Value, error) {
	s := n.String()
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return reflect.ValueOf(i), nil
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return reflect.ValueOf(u), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("invalid number %q", s)
	}
	return reflect.ValueOf(f), nil
}

func convertNumber(rv reflect.Value, to reflect.Type) (reflect.Value, error) {
	out := reflect.New(to).Elem()

	switch {
	case isInt(to.Kind()):
		i, err := toInt64(rv)
		if err != nil {
			return reflect.Value{}, numberError(rv, to, err)
		}
		if out.OverflowInt(i) {
			return reflect.Value{}, numberError(rv, to, errOverflow)
		}
		out.SetInt(i)
	case isUint(to.Kind()):
		u, err := toUint64(rv)
		if err != nil {
			return reflect.Value{}, numberError(rv, to, err)
		}
		if out.OverflowUint(u) {
			return reflect.Value{}, numberError(rv, to, errOverflow)
		}
		out.SetUint(u)
	default:
		f := toFloat64(rv)
		if out.OverflowFloat(f) {
			return reflect.Value{}, numberError(rv, to, errOverflow)
		}
		out.SetFloat(f)
	}
	return out, nil
}

var (
	errOverflow  = errors.New("value out of range")
	errFraction  = errors.New("value has a fractional part")
	errNegative  = errors.New("negative value for unsigned type")
	errNotFinite = errors.New("value is not finite")

	twoPow63 = math.Ldexp(1, 63)
	twoPow64 = math.Ldexp(1, 64)
)

func numberError(rv reflect.Value, to reflect.Type, err error) error {
	return fmt.Errorf("cannot convert %v to %s: %w", rv.Interface(), to, err)
}

func toInt64(rv reflect.Value) (int64, error) {
	switch {
	case isInt(rv.Kind()):
		return rv.Int(), nil
	case isUint(rv.Kind()):
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, errOverflow
		}
		return int64(u), nil
	}
	f, err := integral(rv.Float())
	if err != nil {
		return 0, err
	}
	if f < -twoPow63 || f >= twoPow63 {
		return 0, errOverflow
	}
	return int64(f), nil
}

func toUint64(rv reflect.Value) (uint64, error) {
	switch {
	case isInt(rv.Kind()):
		i := rv.Int()
		if i < 0 {
			return 0, errNegative
		}
		return uint64(i), nil
	case isUint(rv.Kind()):
		return rv.Uint(), nil
	}
	f, err := integral(rv.Float())
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, errNegative
	}
	if f >= twoPow64 {
		return 0, errOverflow
	}
	return uint64(f), nil
}

func toFloat64(rv reflect.Value) float64 {
	switch {
	case isInt(rv.Kind()):
		return float64(rv.Int())
	case isUint(rv.Kind()):
		return float64(rv.Uint())
	}
	return rv.Float()
}

func integral(f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	if f != math.Trunc(f) {
		return 0, errFraction
	}
	return f, nil
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isNumeric(k reflect.Kind) bool {
	return isInt(k) || isUint(k) || k == reflect.Float32 || k == reflect.Float64
}
