package health

import (
	"context"
)

// Checker reports whether a dependency is reachable
type Checker interface {
	// Type returns the dependency kind, e.g. "postgres"
	Type() string

	// HealthCheck returns nil when the dependency is available
	HealthCheck(ctx context.Context) error
}

// Func adapts a plain probe function to Checker
type Func struct {
	Kind  string
	Probe func(ctx context.Context) error
}

// Type returns the dependency kind
func (f Func) Type() string {
	return f.Kind
}

// HealthCheck runs the probe
func (f Func) HealthCheck(ctx context.Context) error {
	return f.Probe(ctx)
}
