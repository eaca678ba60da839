/*
Package registry manages type registration and field construction rules for primed.

The registry system enables:
  - Name-based late binding of nested types (forward references)
  - Per-type field rules consulted by the hydration engine
  - Named transformers for declarative schemas

Type Registry:
Maps type names to struct descriptors:

	registry.RegisterType[Baz]()
	registry.RegisterType[Bar](registry.WithName("LegacyBar"))

	desc, err := registry.Resolve("Baz")

The last registration for a name wins. Resolving a name that was never
registered fails with errors.ErrUnknownTypeReference.

Field Metadata Store:
Associates struct fields with a factory and options:

	registry.MustDefineField[Foo]("bar", registry.TypeOf[Bar]())
	registry.MustDefineField[Foo]("baz", registry.Ref("Baz"), registry.Array())
	registry.MustDefineField[Foo]("otherBaz", registry.Ref("Baz"), registry.Optional())
	registry.MustDefineField[Foo]("id", registry.Transform(factories.ID))

Fields are required and scalar unless told otherwise. A Factory is one of a
named reference (Ref), a direct type (TypeOf) or a transformer (Transform); the
variant is fixed when the factory is built.

Every registration function targets Default unless registry.In(r) is passed,
which keeps tests and embedded engines isolated. The registry is thread-safe
and should be populated during initialization, typically in init() functions or
through a schema document.
*/
package registry
