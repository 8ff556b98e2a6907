// Package agent implements a dependency-driven, dynamically-routed,
// resource-aware workflow engine: an Agent runs a set of named States that
// read and write a shared Context, respecting static dependencies and
// per-state resource specs, and may route to successor states at runtime
// via the Directive each state returns.
package agent

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Agent is a named container of states and the entity whose Run executes a
// workflow (spec.md §6).
type Agent struct {
	name     string
	registry *registry
	cfg      config

	mu   sync.Mutex
	seed map[string]interface{}
}

// New constructs an Agent. name must be non-empty.
func New(name string, opts ...Option) (*Agent, error) {
	if name == "" {
		return nil, &InvalidRegistrationError{Name: name, Reason: "agent name must be non-empty"}
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Agent{
		name:     name,
		registry: newRegistry(),
		cfg:      cfg,
		seed:     make(map[string]interface{}),
	}, nil
}

// Name returns the agent's identifier.
func (a *Agent) Name() string { return a.name }

// AddStateOption configures a single AddState call.
type AddStateOption func(*addStateConfig)

type addStateConfig struct {
	dependencies []string
	resources    ResourceSpec
	entry        bool
}

// WithDependencies sets the static predecessors that must complete before
// this state may run.
func WithDependencies(names ...string) AddStateOption {
	return func(c *addStateConfig) {
		c.dependencies = append([]string(nil), names...)
	}
}

// WithCPU overrides the state's advisory CPU weight.
func WithCPU(v float64) AddStateOption {
	return func(c *addStateConfig) { c.resources.CPU = v }
}

// WithMemory overrides the state's advisory memory weight.
func WithMemory(v int) AddStateOption {
	return func(c *addStateConfig) { c.resources.Memory = v }
}

// WithTimeout overrides the state's per-attempt wall-clock timeout.
func WithTimeout(d time.Duration) AddStateOption {
	return func(c *addStateConfig) { c.resources.Timeout = d }
}

// WithMaxRetries overrides the state's retry budget.
func WithMaxRetries(n int) AddStateOption {
	return func(c *addStateConfig) { c.resources.MaxRetries = n }
}

// AsEntry explicitly designates this state as an entry point. Once any
// state in the agent is marked AsEntry, only explicitly-marked states are
// enqueued at run start; zero-dependency states no longer become entries
// implicitly (spec.md §4.5).
func AsEntry() AddStateOption {
	return func(c *addStateConfig) { c.entry = true }
}

// AddState registers or replaces the state named name. Per spec.md §4.1,
// name must be non-empty and fn must be non-nil; dependency names need not
// yet be registered (forward references are allowed) but must resolve by
// the time Run is called.
func (a *Agent) AddState(name string, fn StateFunc, opts ...AddStateOption) error {
	if name == "" {
		return &InvalidRegistrationError{Name: name, Reason: "state name must be non-empty"}
	}
	if fn == nil {
		return &InvalidRegistrationError{Name: name, Reason: "state function must be non-nil"}
	}

	c := addStateConfig{resources: defaultResourceSpec()}
	for _, opt := range opts {
		opt(&c)
	}

	if err := c.resources.Validate(name); err != nil {
		return err
	}

	a.registry.add(name, fn, c.dependencies, c.resources, c.entry)
	return nil
}

// AddDecoratedState registers a state built with Decorate, merging its
// resource spec with any explicit AddStateOption overrides — explicit
// options win, per spec.md §6.
func (a *Agent) AddDecoratedState(name string, d Decorated, opts ...AddStateOption) error {
	if name == "" {
		return &InvalidRegistrationError{Name: name, Reason: "state name must be non-empty"}
	}
	if d.Fn == nil {
		return &InvalidRegistrationError{Name: name, Reason: "state function must be non-nil"}
	}

	c := addStateConfig{resources: d.Resources}
	for _, opt := range opts {
		opt(&c)
	}

	if err := c.resources.Validate(name); err != nil {
		return err
	}

	a.registry.add(name, d.Fn, c.dependencies, c.resources, c.entry)
	return nil
}

// GetState returns the registered descriptor's public facets for name, or
// UnknownStateError if name was never registered.
func (a *Agent) GetState(name string) (fn StateFunc, dependencies []string, resources ResourceSpec, err error) {
	d, err := a.registry.get(name)
	if err != nil {
		return nil, nil, ResourceSpec{}, err
	}
	deps := make([]string, len(d.dependencies))
	copy(deps, d.dependencies)
	return d.fn, deps, d.resources, nil
}

// SetVariable seeds the run-scoped context with key/value before Run is
// called (spec.md §6, "Initial context").
func (a *Agent) SetVariable(key string, value interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seed[key] = value
}

// Run executes the workflow: it validates the dependency graph, seeds the
// ready set with entry states, and dispatches states concurrently until no
// state is running and none is dispatchable (spec.md §2, §4.5).
//
// Run returns a *RunFailedError (wrapping the failing state's name, attempt
// count and last error, with a partial Result attached) if any state fails
// terminally; otherwise it returns a populated, successful Result.
func (a *Agent) Run(ctx context.Context) (*Result, error) {
	a.mu.Lock()
	seed := cloneMap(a.seed)
	a.mu.Unlock()

	c := newContext(seed)
	runID := uuid.NewString()
	return runSchedule(ctx, a, c, runID)
}
