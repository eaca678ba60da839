/*
Package primed builds fully populated struct instances from partial payloads.

Types declare, once at initialization, how each of their hydrated fields is
produced: by a nested hydratable type, by a named reference to a type that
may be registered later, or by a plain transformer function. The engine then
turns any partial payload, including none at all, into a complete instance
graph:
  - Supplied values are hydrated recursively or passed through transformers
  - Required fields that are missing get a default
  - Optional fields that are missing stay nil, or empty for arrays
  - Required self-references are left unset instead of recursing forever
  - Fields not covered by a rule are copied from the payload as they are

Basic Usage:

	func init() {
	    registry.RegisterType[Bar]()
	    registry.RegisterType[Baz]()
	    registry.MustDefineField[Bar]("golf", registry.Transform(factories.Decimal))
	    registry.MustDefineField[Baz]("mike", registry.Transform(factories.Decimal))
	    registry.MustDefineField[Baz]("bar", registry.Ref("Bar"))
	}

	baz, err := primed.New[Baz](map[string]any{"mike": 5})
	// baz.Bar is a *Bar with Golf set to 0

	copy, err := primed.Clone(baz)

Field rules can also be declared in YAML with the schema package, and engine
settings read from the environment with the config package.
*/
package primed
