/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sort"

	"github.com/suparena/primed/errors"
)

// RegisterTransformer records fn under name so declarative schemas can refer
// to it. The last registration for a name wins.
func (r *Registry) RegisterTransformer(name string, fn any) error {
	if name == "" {
		return errors.NewValidationError("name", "transformer name is empty")
	}
	t, err := ParseTransformer(fn)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.transformers[name] = t
	return nil
}

// TransformerByName returns the transformer registered under name.
func (r *Registry) TransformerByName(name string) (*Transformer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.transformers[name]
	return t, ok
}

// TransformerNames returns the registered transformer names in sorted order.
func (r *Registry) TransformerNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.transformers))
	for name := range r.transformers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
