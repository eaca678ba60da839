/*
Package factories provides the stock value factories for hydrated fields:
decimals, identifiers, UUIDs, dates and date-times.

Each factory takes its value as an optional argument and produces a default
when called without one, so it can back both supplied and required fields:

	registry.MustDefineField[Invoice]("total", registry.Transform(factories.Decimal))
	registry.MustDefineField[Invoice]("issued", registry.Transform(factories.DateTime))

Install registers all of them by name for use in YAML schemas.
*/
package factories
