/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package factories

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/primed/errors"
	"github.com/suparena/primed/registry"
)

var fixed = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func freeze(t *testing.T) {
	t.Helper()
	saved := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = saved })
}

func TestDecimal(t *testing.T) {
	d := decimal.RequireFromString("12.50")

	tests := []struct {
		name  string
		value []any
		want  string
	}{
		{name: "no value", value: nil, want: "0"},
		{name: "nil", value: []any{nil}, want: "0"},
		{name: "int", value: []any{7}, want: "7"},
		{name: "float", value: []any{2.25}, want: "2.25"},
		{name: "string", value: []any{"3.1415"}, want: "3.1415"},
		{name: "json number", value: []any{json.Number("42")}, want: "42"},
		{name: "decimal", value: []any{d}, want: "12.5"},
		{name: "decimal pointer", value: []any{&d}, want: "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decimal(tt.value...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDecimalErrors(t *testing.T) {
	_, err := Decimal("twelve")
	assert.True(t, errors.IsValidationError(err))

	_, err = Decimal(true)
	assert.True(t, errors.IsValidationError(err))
}

func TestID(t *testing.T) {
	assert.Equal(t, "-1", ID())
	assert.Equal(t, "-1", ID(""))
	assert.Equal(t, "abc", ID("abc"))
}

func TestUUID(t *testing.T) {
	generated, err := UUID()
	require.NoError(t, err)
	assert.True(t, strfmt.IsUUID4(generated.String()))

	other, err := UUID("")
	require.NoError(t, err)
	assert.NotEqual(t, generated, other)

	const given = "9b2b7c1e-3f4a-4d5b-8c6d-7e8f9a0b1c2d"
	kept, err := UUID(given)
	require.NoError(t, err)
	assert.Equal(t, strfmt.UUID4(given), kept)

	_, err = UUID("not-a-uuid")
	assert.True(t, errors.IsValidationError(err))
}

func TestDate(t *testing.T) {
	freeze(t)

	tests := []struct {
		name  string
		value []any
		want  time.Time
	}{
		{name: "no value", value: nil, want: fixed},
		{name: "nil", value: []any{nil}, want: fixed},
		{name: "time", value: []any{fixed.Add(time.Hour)}, want: fixed.Add(time.Hour)},
		{name: "full date", value: []any{"2024-02-29"}, want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", value: []any{"2024-02-29T10:30:00Z"}, want: time.Date(2024, 2, 29, 10, 30, 0, 0, time.UTC)},
		{name: "unix millis", value: []any{int64(0)}, want: time.UnixMilli(0)},
		{name: "json number millis", value: []any{json.Number("1709202600000")}, want: time.UnixMilli(1709202600000)},
		{name: "strfmt date", value: []any{strfmt.Date(fixed)}, want: fixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Date(tt.value...)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}

	_, err := Date("yesterday")
	assert.True(t, errors.IsValidationError(err))

	_, err = Date(json.Number("1.5"))
	assert.True(t, errors.IsValidationError(err))
}

func TestDateTime(t *testing.T) {
	freeze(t)

	got, err := DateTime()
	require.NoError(t, err)
	assert.True(t, fixed.Equal(time.Time(got)))

	got, err = DateTime("2024-02-29T10:30:00.000Z")
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 2, 29, 10, 30, 0, 0, time.UTC).Equal(time.Time(got)))

	got, err = DateTime(fixed)
	require.NoError(t, err)
	assert.True(t, fixed.Equal(time.Time(got)))

	_, err = DateTime("yesterday")
	assert.True(t, errors.IsValidationError(err))

	_, err = DateTime(3)
	assert.True(t, errors.IsValidationError(err))
}

func TestInstall(t *testing.T) {
	r := registry.New()
	require.NoError(t, Install(r))

	assert.Equal(t, []string{NameDate, NameDateTime, NameDecimal, NameID, NameUUID}, r.TransformerNames())

	id, ok := r.TransformerByName(NameID)
	require.True(t, ok)

	got, err := id.Call(nil, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultID, got.Interface())

	dec, ok := r.TransformerByName(NameDecimal)
	require.True(t, ok)

	got, err = dec.Call(float64(1.5), true)
	require.NoError(t, err)
	assert.Equal(t, "1.5", got.Interface().(decimal.Decimal).String())
}
