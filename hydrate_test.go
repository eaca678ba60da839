/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package primed_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/suparena/primed"
	"github.com/suparena/primed/errors"
	"github.com/suparena/primed/payload"
	"github.com/suparena/primed/registry"
	"github.com/suparena/primed/testmodels"
)

var compareValues = []cmp.Option{
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b strfmt.DateTime) bool { return time.Time(a).Equal(time.Time(b)) }),
}

func newEngine(t *testing.T, opts ...primed.Option) *primed.Engine {
	t.Helper()
	r := registry.New()
	require.NoError(t, testmodels.Install(r))
	return primed.NewEngine(append([]primed.Option{primed.WithRegistry(r)}, opts...)...)
}

func hydrateFoo(t *testing.T, e *primed.Engine, raw any) *testmodels.Foo {
	t.Helper()
	out, err := e.Hydrate("Foo", raw)
	require.NoError(t, err)
	return out.(*testmodels.Foo)
}

// node refers to itself through a required field.
type node struct {
	Label string `json:"label"`
	Next  *node  `json:"next"`
}

func nodeRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	registry.RegisterType[node](registry.In(r))
	require.NoError(t, registry.DefineField[node]("next", registry.TypeOf[node](), registry.In(r)))
	return r
}

func TestHydrateEmptyPayload(t *testing.T) {
	foo := hydrateFoo(t, newEngine(t), nil)

	assert.Equal(t, "-1", foo.ID)
	assert.Equal(t, "4", foo.Delta)
	assert.True(t, foo.Foxtrot)
	assert.True(t, foo.Number.IsZero())
	assert.WithinDuration(t, time.Now(), time.Time(foo.SomeDate), time.Minute)
	assert.WithinDuration(t, time.Now(), foo.SomeOtherDate, time.Minute)

	require.NotNil(t, foo.Bar)
	assert.Equal(t, 2, foo.Bar.Hotel)
	require.NotNil(t, foo.Bar.Baz, "Bar.baz is not on the active trace when Bar is built under Foo")
	assert.Nil(t, foo.Bar.Baz.Bar, "Bar is already under construction")
	assert.Equal(t, "4", foo.Bar.Baz.Papa)

	require.Len(t, foo.Baz, 1)
	require.NotNil(t, foo.Baz[0].Bar)
	assert.Nil(t, foo.Baz[0].Bar.Baz)

	assert.Nil(t, foo.ParentFoo)
	assert.Nil(t, foo.OtherBaz)
}

func TestHydrateEmptyMapEqualsNil(t *testing.T) {
	e := newEngine(t)
	fromNil := hydrateFoo(t, e, nil)
	fromEmpty := hydrateFoo(t, e, map[string]any{})

	// Dates default to the current time, so only the structure is compared.
	ignoreDates := cmp.FilterPath(func(p cmp.Path) bool {
		switch p.Last().String() {
		case ".SomeDate", ".SomeOtherDate":
			return true
		}
		return false
	}, cmp.Ignore())

	opts := append([]cmp.Option{ignoreDates}, compareValues...)
	if diff := cmp.Diff(fromNil, fromEmpty, opts...); diff != "" {
		t.Errorf("nil and empty payloads differ (-nil +empty):\n%s", diff)
	}
}

func TestHydratePayload(t *testing.T) {
	raw, err := payload.FromJSON([]byte(`{
		"id": "foo-1",
		"charlie": "c",
		"echo": true,
		"number": 12.5,
		"someDate": "2024-02-29T10:30:00Z",
		"bar": {"golf": "1.5", "hotel": 7},
		"baz": [{"mike": 1}, {"mike": 2, "quebec": true}],
		"otherBaz": {"oscar": "o"},
		"unknown": "ignored"
	}`))
	require.NoError(t, err)

	foo := hydrateFoo(t, newEngine(t), raw)

	assert.Equal(t, "foo-1", foo.ID)
	assert.Equal(t, "c", foo.Charlie)
	assert.True(t, foo.Echo)
	assert.Equal(t, "4", foo.Delta)
	assert.Equal(t, "14", foo.Total().String())
	assert.True(t, time.Date(2024, 2, 29, 10, 30, 0, 0, time.UTC).Equal(time.Time(foo.SomeDate)))

	require.NotNil(t, foo.Bar)
	assert.Equal(t, 7, foo.Bar.Hotel)
	assert.Equal(t, "4", foo.Bar.India)

	require.Len(t, foo.Baz, 2)
	assert.Equal(t, "1", foo.Baz[0].Mike.String())
	assert.Equal(t, "2", foo.Baz[1].Mike.String())
	assert.Nil(t, foo.Baz[0].Quebec)
	require.NotNil(t, foo.Baz[1].Quebec)
	assert.True(t, *foo.Baz[1].Quebec)

	require.NotNil(t, foo.OtherBaz)
	assert.Equal(t, "o", foo.OtherBaz.Oscar)
	require.NotNil(t, foo.OtherBaz.Bar)
}

func TestHydrateDoesNotMutatePayload(t *testing.T) {
	raw := map[string]any{
		"bar": map[string]any{"golf": 3},
		"baz": []any{map[string]any{"mike": 1}},
	}

	hydrateFoo(t, newEngine(t), raw)

	assert.Equal(t, map[string]any{
		"bar": map[string]any{"golf": 3},
		"baz": []any{map[string]any{"mike": 1}},
	}, raw)
}

func TestShapeMismatch(t *testing.T) {
	e := newEngine(t)

	_, err := e.Hydrate("Foo", map[string]any{"baz": map[string]any{"mike": 1}})
	require.Error(t, err)
	assert.True(t, errors.IsArrayExpected(err))
	assert.EqualError(t, err, "Foo: array expected for field Foo.baz")

	_, err = e.Hydrate("Foo", map[string]any{"bar": []any{map[string]any{}}})
	require.Error(t, err)
	assert.True(t, errors.IsArrayNotExpected(err))
	assert.EqualError(t, err, "Foo: array not expected for field Foo.bar")

	_, err = e.Hydrate("Foo", map[string]any{"bar": map[string]any{"baz": []any{}}})
	require.Error(t, err)
	assert.True(t, errors.IsArrayNotExpected(err))
	assert.EqualError(t, err, "Foo.bar: array not expected for field Bar.baz")
}

func TestShapeCheckedBeforeNestedFields(t *testing.T) {
	// bar is declared before baz and would fail while hydrating, but the
	// shape of baz is checked first.
	_, err := newEngine(t).Hydrate("Foo", map[string]any{
		"bar": map[string]any{"golf": "not a number"},
		"baz": map[string]any{},
	})
	require.Error(t, err)
	assert.True(t, errors.IsArrayExpected(err))
}

func TestZeroValuesArePresent(t *testing.T) {
	foo := hydrateFoo(t, newEngine(t), map[string]any{
		"id":     "",
		"number": 0,
		"baz":    []any{},
	})

	assert.Equal(t, "-1", foo.ID, "empty ids fall back to the default")
	assert.True(t, foo.Number.IsZero())
	assert.NotNil(t, foo.Baz)
	assert.Empty(t, foo.Baz, "an explicit empty list is kept")
}

func TestNullTreatedAsAbsent(t *testing.T) {
	foo := hydrateFoo(t, newEngine(t), map[string]any{
		"bar":      nil,
		"otherBaz": nil,
		"delta":    nil,
	})

	require.NotNil(t, foo.Bar, "a required field with null gets its default")
	assert.Nil(t, foo.OtherBaz)
	assert.Equal(t, "4", foo.Delta, "null plain values keep the default")
}

func TestErrorPath(t *testing.T) {
	_, err := newEngine(t).Hydrate("Foo", map[string]any{
		"baz": []any{
			map[string]any{},
			map[string]any{"bar": map[string]any{"golf": "abc"}},
		},
	})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Foo.baz[1].bar.golf: "), err.Error())
	assert.ErrorIs(t, err, errors.ErrTransform)
	assert.True(t, errors.IsValidationError(err))
}

func TestPlainFieldTypeError(t *testing.T) {
	_, err := newEngine(t).Hydrate("Bar", map[string]any{"hotel": "many"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFieldType)
	assert.Contains(t, err.Error(), "Bar.hotel")
}

// gauge has plain numeric fields narrower than the payload's numbers.
type gauge struct {
	Level int8    `json:"level"`
	Count uint    `json:"count"`
	Ratio float32 `json:"ratio"`
}

func TestPlainFieldRejectsLossyNumbers(t *testing.T) {
	r := registry.New()
	registry.RegisterType[gauge](registry.In(r))
	e := primed.NewEngine(primed.WithRegistry(r))

	tests := []struct {
		name  string
		typ   string
		raw   map[string]any
		field string
	}{
		{name: "fraction into int", typ: "Bar", raw: map[string]any{"hotel": 7.9}, field: "Bar.hotel"},
		{name: "json fraction into int", typ: "Bar", raw: map[string]any{"hotel": json.Number("7.9")}, field: "Bar.hotel"},
		{name: "overflow int8", typ: "gauge", raw: map[string]any{"level": 300}, field: "gauge.level"},
		{name: "negative into uint", typ: "gauge", raw: map[string]any{"count": -1}, field: "gauge.count"},
		{name: "overflow float32", typ: "gauge", raw: map[string]any{"ratio": 1e300}, field: "gauge.ratio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := e
			if tt.typ == "Bar" {
				engine = newEngine(t)
			}
			_, err := engine.Hydrate(tt.typ, tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrFieldType)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	out, err := e.Hydrate("gauge", map[string]any{"level": 127.0, "count": json.Number("3"), "ratio": 0.5})
	require.NoError(t, err)
	assert.Equal(t, &gauge{Level: 127, Count: 3, Ratio: 0.5}, out)
}

func TestTransformerRejectsLossyNumbers(t *testing.T) {
	r := registry.New()
	require.NoError(t, registry.DefineField[tagged]("single", registry.Transform(count), registry.In(r)))
	e := primed.NewEngine(primed.WithRegistry(r))

	_, err := e.HydrateType(reflect.TypeFor[tagged](), map[string]any{"single": 4.5})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTransform)
	assert.Contains(t, err.Error(), "fractional part")
}

func TestJSONNumbersKeepPrecision(t *testing.T) {
	raw, err := payload.FromJSON([]byte(`{"number": 9007199254740993, "bar": {"golf": 12345678901234567.89}}`))
	require.NoError(t, err)

	foo := hydrateFoo(t, newEngine(t), raw)
	assert.Equal(t, "9007199254740993", foo.Number.String())
	require.NotNil(t, foo.Bar)
	assert.Equal(t, "12345678901234567.89", foo.Bar.Golf.String())
}

func TestRuledKeysMatchCaseInsensitively(t *testing.T) {
	e := newEngine(t)

	out, err := e.Hydrate("Baz", map[string]any{"MIKE": 5, "OSCAR": "o"})
	require.NoError(t, err)
	baz := out.(*testmodels.Baz)
	assert.Equal(t, "5", baz.Mike.String())
	assert.Equal(t, "o", baz.Oscar)

	out, err = e.Hydrate("Baz", map[string]any{"MIKE": 2, "mike": 1})
	require.NoError(t, err)
	assert.Equal(t, "1", out.(*testmodels.Baz).Mike.String(), "an exact key wins")

	_, err = e.Hydrate("Baz", map[string]any{"BAR": []any{map[string]any{}}})
	assert.True(t, errors.IsArrayNotExpected(err), "shape is checked on case-insensitive keys too")
}

func TestSelfReferenceTerminates(t *testing.T) {
	n, err := primed.New[node](nil, primed.WithRegistry(nodeRegistry(t)))
	require.NoError(t, err)
	assert.Nil(t, n.Next)
}

func TestSelfReferenceLenient(t *testing.T) {
	n, err := primed.New[node](nil,
		primed.WithRegistry(nodeRegistry(t)),
		primed.WithCyclePolicy(primed.CycleLenient))
	require.NoError(t, err)

	require.NotNil(t, n.Next)
	assert.Nil(t, n.Next.Next)
}

func TestSelfReferenceSupplied(t *testing.T) {
	n, err := primed.New[node](map[string]any{
		"label": "a",
		"next":  map[string]any{"label": "b", "next": map[string]any{"label": "c"}},
	}, primed.WithRegistry(nodeRegistry(t)))
	require.NoError(t, err)

	require.NotNil(t, n.Next)
	require.NotNil(t, n.Next.Next)
	assert.Equal(t, "c", n.Next.Next.Label)
	assert.Nil(t, n.Next.Next.Next)
}

func TestCycleWarningLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	_, err := primed.New[node](nil,
		primed.WithRegistry(nodeRegistry(t)),
		primed.WithLogger(zap.New(core)))
	require.NoError(t, err)

	entries := logs.FilterMessage("Required field left unset, type already under construction").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "node.next", entries[0].ContextMap()["field"])
	assert.Equal(t, "node", entries[0].ContextMap()["trace"])
}

func TestMaxDepth(t *testing.T) {
	raw := map[string]any{"next": map[string]any{"next": map[string]any{}}}

	_, err := primed.New[node](raw,
		primed.WithRegistry(nodeRegistry(t)),
		primed.WithMaxDepth(2))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMaxDepthExceeded)
	assert.True(t, strings.HasPrefix(err.Error(), "node.next.next: "), err.Error())

	_, err = primed.New[node](raw,
		primed.WithRegistry(nodeRegistry(t)),
		primed.WithMaxDepth(3))
	assert.NoError(t, err)
}

type holder struct {
	Item *item `json:"item"`
}

type item struct {
	Name string `json:"name"`
}

type other struct{}

func TestForwardReference(t *testing.T) {
	r := registry.New()
	registry.RegisterType[holder](registry.In(r))
	require.NoError(t, registry.DefineField[holder]("item", registry.Ref("item"), registry.In(r)))

	_, err := primed.New[holder](nil, primed.WithRegistry(r))
	require.Error(t, err)
	assert.True(t, errors.IsUnknownTypeReference(err))
	assert.EqualError(t, err, `holder.item: class "item" was never registered`)

	registry.RegisterType[item](registry.In(r))

	h, err := primed.New[holder](map[string]any{"item": map[string]any{"name": "late"}}, primed.WithRegistry(r))
	require.NoError(t, err)
	require.NotNil(t, h.Item)
	assert.Equal(t, "late", h.Item.Name)
}

func TestUnknownReferenceOnOptionalField(t *testing.T) {
	r := registry.New()
	require.NoError(t, registry.DefineField[holder]("item", registry.Ref("Ghost"), registry.Optional(), registry.In(r)))

	_, err := primed.New[holder](nil, primed.WithRegistry(r))
	assert.True(t, errors.IsUnknownTypeReference(err))
}

func TestReferenceTypeMismatch(t *testing.T) {
	r := registry.New()
	registry.RegisterType[other](registry.In(r))
	require.NoError(t, registry.DefineField[holder]("item", registry.Ref("other"), registry.In(r)))

	_, err := primed.New[holder](nil, primed.WithRegistry(r))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidFactory(err))
}

func TestHydrateUnknownName(t *testing.T) {
	_, err := newEngine(t).Hydrate("Qux", nil)
	assert.True(t, errors.IsUnknownTypeReference(err))
}

func TestHydrateAlias(t *testing.T) {
	e := newEngine(t)
	registry.RegisterType[testmodels.Bar](registry.In(e.Registry()), registry.WithName("LegacyBar"))

	out, err := e.Hydrate("LegacyBar", map[string]any{"hotel": 3})
	require.NoError(t, err)
	assert.Equal(t, 3, out.(*testmodels.Bar).Hotel)
}

func TestHydrateInvalidPayload(t *testing.T) {
	_, err := newEngine(t).Hydrate("Foo", []int{1, 2})
	assert.True(t, errors.IsValidationError(err))

	_, err = newEngine(t).Hydrate("Foo", map[string]any{"bar": 5})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.True(t, strings.HasPrefix(err.Error(), "Foo.bar: "), err.Error())
}

type tagged struct {
	Values []int   `json:"values"`
	Single int     `json:"single"`
	Notes  []int   `json:"notes"`
	Maybe  *int    `json:"maybe"`
	Lists  [][]int `json:"lists"`
}

func count(v ...int) int {
	if len(v) == 0 {
		return 1
	}
	return v[0] * 10
}

func TestTransformerFields(t *testing.T) {
	r := registry.New()
	for _, def := range []struct {
		name string
		opts []registry.Option
	}{
		{name: "values", opts: []registry.Option{registry.Array()}},
		{name: "single"},
		{name: "notes", opts: []registry.Option{registry.Array(), registry.Optional()}},
		{name: "maybe", opts: []registry.Option{registry.Optional()}},
	} {
		opts := append([]registry.Option{registry.In(r)}, def.opts...)
		require.NoError(t, registry.DefineField[tagged](def.name, registry.Transform(count), opts...))
	}
	e := primed.NewEngine(primed.WithRegistry(r))

	out, err := e.HydrateType(reflect.TypeFor[tagged](), nil)
	require.NoError(t, err)
	got := out.(*tagged)

	assert.Equal(t, []int{1}, got.Values, "a required array gets one default element")
	assert.Equal(t, 1, got.Single)
	assert.NotNil(t, got.Notes)
	assert.Empty(t, got.Notes)
	assert.Nil(t, got.Maybe)

	out, err = e.HydrateType(reflect.TypeFor[tagged](), map[string]any{
		"values": []any{1, 2.0, 3},
		"single": 4,
		"maybe":  5,
		"lists":  []any{[]any{1, 2}},
	})
	require.NoError(t, err)
	got = out.(*tagged)

	assert.Equal(t, []int{10, 20, 30}, got.Values)
	assert.Equal(t, 40, got.Single)
	require.NotNil(t, got.Maybe)
	assert.Equal(t, 50, *got.Maybe)
	assert.Equal(t, [][]int{{1, 2}}, got.Lists, "plain fields decode nested lists")
}

func TestNewRejectsNonStruct(t *testing.T) {
	_, err := primed.New[int](nil)
	assert.Error(t, err)

	assert.Panics(t, func() { primed.MustNew[string](nil) })
}
