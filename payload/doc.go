/*
Package payload defines the raw input model consumed by the hydration engine.

A Payload is a plain map from field name to raw value. It may be partial or nil
and is never mutated by the engine. Anything that looks like a payload can be
normalized with Of:

	p, err := payload.Of(map[string]any{"mike": 5})   // passthrough
	p, err := payload.Of(existingBaz)                 // struct fields become keys

Presence and Shape:
The engine treats a key as supplied only when its value is structurally present.
Missing keys, untyped nil and nil pointers, slices, maps or interfaces are all
absent; 0, false and "" are present:

	payload.IsAbsent(nil)         // true
	payload.IsAbsent((*Bar)(nil)) // true
	payload.IsAbsent(0)           // false

A sequence is any slice or array except []byte.

Field Names:
Payload keys map onto exported struct fields through the primed tag, then the
json tag, then the Go field name:

	type Bar struct {
	    Golf  decimal.Decimal `primed:"golf"`
	    Hotel int             `json:"hotel"`
	    India string                          // "India", also matched as "india"
	}

Decoders:
External documents are decoded without any I/O:

	p, err := payload.FromJSON(body)
	p, err := payload.FromYAML(doc)
	p, err := payload.FromItem(out.Item) // DynamoDB attribute values
*/
package payload
