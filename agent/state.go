package agent

import (
	"context"
	"time"
)

// StateFunc is a user-defined state: it reads and writes the shared Context
// and returns a Directive naming zero or more successor states, or an error
// if the attempt failed.
//
// StateFunc may perform cooperative waits (I/O, timers) via the supplied
// context.Context; the engine suspends only at calls the function itself
// makes (spec.md §5). The context.Context is cancelled when the function's
// per-attempt timeout elapses or when the run is terminally failing and
// in-flight attempts are being cancelled.
type StateFunc func(ctx context.Context, c *Context) (Directive, error)

// stateDescriptor is the registry's immutable-after-registration record for
// one state: its function, static dependencies, resource spec and
// registration bookkeeping.
type stateDescriptor struct {
	name         string
	fn           StateFunc
	dependencies []string
	resources    ResourceSpec
	explicitly   bool // true if AsEntry() was passed at registration
	order        int  // insertion index; registry snapshots and dispatch follow it
}

// Decorated is the value produced by Decorate: a state function paired with
// a resource spec attached out-of-band, mirroring the `@state(...)`
// decorator contract described in spec.md §6 and §9. AddDecoratedState merges this
// spec with any explicit AddStateOption resource overrides, with the
// explicit option winning per spec.md §6 ("explicit arguments override
// annotation").
type Decorated struct {
	Fn        StateFunc
	Resources ResourceSpec
}

// ResourceOption configures a ResourceSpec built by Decorate.
type ResourceOption func(*ResourceSpec)

// WithCPUWeight sets the advisory CPU weight carried by a decorated state.
func WithCPUWeight(v float64) ResourceOption {
	return func(r *ResourceSpec) { r.CPU = v }
}

// WithMemoryWeight sets the advisory memory weight carried by a decorated state.
func WithMemoryWeight(v int) ResourceOption {
	return func(r *ResourceSpec) { r.Memory = v }
}

// WithDecoratedTimeout sets the per-attempt timeout carried by a decorated state.
func WithDecoratedTimeout(d time.Duration) ResourceOption {
	return func(r *ResourceSpec) { r.Timeout = d }
}

// WithDecoratedRetries sets max_retries carried by a decorated state.
func WithDecoratedRetries(n int) ResourceOption {
	return func(r *ResourceSpec) { r.MaxRetries = n }
}

// Decorate attaches a resource spec to fn, equivalent to the `state(cpu=...,
// memory=..., timeout=..., max_retries=...)` decorator of spec.md §6. The
// result is consumed by Agent.AddDecoratedState.
func Decorate(fn StateFunc, opts ...ResourceOption) Decorated {
	r := defaultResourceSpec()
	for _, opt := range opts {
		opt(&r)
	}
	return Decorated{Fn: fn, Resources: r}
}
