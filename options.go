/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package primed

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/suparena/primed/registry"
)

// CyclePolicy selects how far a required self-referencing field may nest
// before it is left unset.
type CyclePolicy int

const (
	// CycleStrict skips a required field whose type is anywhere in the active
	// trace, including the type being built.
	CycleStrict CyclePolicy = iota
	// CycleLenient only consults the ancestors of the type being built, so a
	// required self-reference is hydrated exactly once more before it is skipped.
	CycleLenient
)

func (p CyclePolicy) String() string {
	switch p {
	case CycleStrict:
		return "strict"
	case CycleLenient:
		return "lenient"
	default:
		return fmt.Sprintf("CyclePolicy(%d)", int(p))
	}
}

// ParseCyclePolicy parses "strict" or "lenient". An empty string is strict.
func ParseCyclePolicy(s string) (CyclePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return CycleStrict, nil
	case "lenient":
		return CycleLenient, nil
	default:
		return 0, fmt.Errorf("unknown cycle policy %q", s)
	}
}

// Options configures an Engine
type Options struct {
	Registry    *registry.Registry // Type and field rules (default: registry.Default)
	Logger      *zap.Logger        // Debug and cycle warnings (default: no-op)
	CyclePolicy CyclePolicy        // Cycle window (default: CycleStrict)
	MaxDepth    int                // Nesting limit, 0 for none (default: 0)
}

// Option is a functional option for configuring an Engine
type Option func(*Options)

// DefaultOptions returns default engine options
func DefaultOptions() Options {
	return Options{
		Registry:    registry.Default,
		Logger:      zap.NewNop(),
		CyclePolicy: CycleStrict,
	}
}

// WithRegistry sets the registry consulted for types and field rules
func WithRegistry(r *registry.Registry) Option {
	return func(opts *Options) {
		if r != nil {
			opts.Registry = r
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(opts *Options) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithCyclePolicy sets the cycle window
func WithCyclePolicy(policy CyclePolicy) Option {
	return func(opts *Options) {
		opts.CyclePolicy = policy
	}
}

// WithMaxDepth limits how many nested instances a single hydration may build
// on one path. Zero disables the limit.
func WithMaxDepth(depth int) Option {
	return func(opts *Options) {
		opts.MaxDepth = depth
	}
}
