/*
Package schema declares field rules in YAML instead of Go code.

A schema names registered types and, for each, the factory of every
hydrated field. Field order in the document is the declaration order.

	types:
	  Foo:
	    alias: [LegacyFoo]
	    fields:
	      id: PrimedId
	      bar: {factory: Bar}
	      baz: {factory: Baz, array: true}
	      otherBaz: {factory: Baz, required: false}

Factory names are looked up among the registry's transformers first
(see factories.Install); any other name is a reference to a registered
type, resolved when an instance is hydrated:

	if err := schema.LoadFile(registry.Default, "schema.yaml"); err != nil {
		log.Fatal(err)
	}
*/
package schema
