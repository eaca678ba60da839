/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package testmodels

import (
	"reflect"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/shopspring/decimal"

	"github.com/suparena/primed/factories"
	"github.com/suparena/primed/registry"
)

type Foo struct {

	// Identifier, "-1" until assigned.
	ID string `json:"id"`

	Charlie string `json:"charlie"`

	// Default: "4"
	Delta string `json:"delta"`

	Echo bool `json:"echo"`

	// Default: true
	Foxtrot bool `json:"foxtrot"`

	Number decimal.Decimal `json:"number"`

	// Format: date-time
	SomeDate strfmt.DateTime `json:"someDate"`

	SomeOtherDate time.Time `json:"someOtherDate"`

	Bar *Bar `json:"bar"`

	Baz []*Baz `json:"baz"`

	// Always nil on a top-level Foo built without a parentFoo payload.
	ParentFoo *Foo `json:"parentFoo"`

	// Required: false
	OtherBaz *Baz `json:"otherBaz"`
}

// SetDefaults implements primed.Defaulter.
func (f *Foo) SetDefaults() {
	f.Delta = "4"
	f.Foxtrot = true
}

// Total is Number plus the golf value of Bar.
func (f *Foo) Total() decimal.Decimal {
	if f.Bar == nil {
		return f.Number
	}
	return f.Number.Add(f.Bar.Golf)
}

type Bar struct {
	Golf decimal.Decimal `json:"golf"`

	Baz *Baz `json:"baz"`

	// Default: 2
	Hotel int `json:"hotel"`

	// Default: "4"
	India string `json:"india"`

	// Default: "4"
	Juliet string `json:"juliet"`

	Kilo bool `json:"kilo"`

	Lima bool `json:"lima"`
}

// SetDefaults implements primed.Defaulter.
func (b *Bar) SetDefaults() {
	b.Hotel = 2
	b.India = "4"
	b.Juliet = "4"
}

type Baz struct {
	Mike decimal.Decimal `json:"mike"`

	November decimal.Decimal `json:"november"`

	Bar *Bar `json:"bar"`

	Oscar string `json:"oscar"`

	// Default: "4"
	Papa string `json:"papa"`

	Quebec *bool `json:"quebec,omitempty"`

	Romeo bool `json:"romeo"`
}

// SetDefaults implements primed.Defaulter.
func (b *Baz) SetDefaults() {
	b.Papa = "4"
}

// Install registers Foo, Bar and Baz and their field rules in r.
func Install(r *registry.Registry) error {
	for _, t := range []any{Foo{}, Bar{}, Baz{}} {
		if _, err := r.Register(reflect.TypeOf(t), ""); err != nil {
			return err
		}
	}

	decimalFactory := registry.Transform(factories.Decimal)
	defs := []struct {
		owner   any
		field   string
		factory registry.Factory
		opts    []registry.Option
	}{
		{owner: Bar{}, field: "golf", factory: decimalFactory},
		{owner: Bar{}, field: "baz", factory: registry.Ref("Baz")},

		{owner: Foo{}, field: "id", factory: registry.Transform(factories.ID)},
		{owner: Foo{}, field: "number", factory: decimalFactory},
		{owner: Foo{}, field: "someDate", factory: registry.Transform(factories.DateTime)},
		{owner: Foo{}, field: "someOtherDate", factory: registry.Transform(factories.Date)},
		{owner: Foo{}, field: "bar", factory: registry.TypeOf[Bar]()},
		{owner: Foo{}, field: "baz", factory: registry.Ref("Baz"), opts: []registry.Option{registry.Array()}},
		{owner: Foo{}, field: "parentFoo", factory: registry.TypeOf[Foo]()},
		{owner: Foo{}, field: "otherBaz", factory: registry.Ref("Baz"), opts: []registry.Option{registry.Optional()}},

		{owner: Baz{}, field: "mike", factory: decimalFactory},
		{owner: Baz{}, field: "november", factory: decimalFactory},
		{owner: Baz{}, field: "bar", factory: registry.TypeOf[Bar]()},
	}
	for _, d := range defs {
		if err := r.DefineField(reflect.TypeOf(d.owner), d.field, d.factory, d.opts...); err != nil {
			return err
		}
	}
	return nil
}
