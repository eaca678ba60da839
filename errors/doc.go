/*
Package errors provides semantic error types for the primed hydration engine.

The package defines the failure modes of hydration with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrUnknownTypeReference = errors.New("unknown type reference")
	    ErrArrayExpected        = errors.New("array expected")
	    ErrArrayNotExpected     = errors.New("array not expected")
	    ErrInvalidFactory       = errors.New("invalid factory")
	    ErrFieldType            = errors.New("field type mismatch")
	    ErrTransform            = errors.New("transform failed")
	    ErrMaxDepthExceeded     = errors.New("maximum hydration depth exceeded")
	    ErrInvalidInput         = errors.New("invalid input")
	)

Usage:

	foo, err := primed.New[Foo](payload)
	if err != nil {
	    if errors.IsShapeMismatch(err) {
	        // the payload disagrees with a field's declared arity
	        return nil, fmt.Errorf("bad request: %w", err)
	    }
	    return nil, err
	}

Cycles in the type graph are not errors. A required field whose hydration would
revisit a type already under construction is left unset and logged as a warning.
*/
package errors
