package agent

import "sync"

// registry holds the set of registered states: name -> descriptor. It
// records insertion order; snapshot returns descriptors in that order, which
// is the order the scheduler considers them in when dispatching. Every
// zero-dependency state is an implicit entry, so the order does not choose
// between entries.
//
// Re-registering a name replaces its function, dependencies and resource
// spec, but keeps the insertion index from the *first* registration: the
// order reflects when a name was first seen, not when it was last written.
// See DESIGN.md for the rationale behind this choice.
type registry struct {
	mu      sync.Mutex
	states  map[string]*stateDescriptor
	nextOrd int
}

func newRegistry() *registry {
	return &registry{states: make(map[string]*stateDescriptor)}
}

// add registers or replaces the descriptor for name. It does not validate
// name or fn; callers (Agent.AddState) are expected to have already done so.
func (r *registry) add(name string, fn StateFunc, deps []string, resources ResourceSpec, entry bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order := r.nextOrd
	if existing, ok := r.states[name]; ok {
		order = existing.order
	} else {
		r.nextOrd++
	}

	depsCopy := make([]string, len(deps))
	copy(depsCopy, deps)

	r.states[name] = &stateDescriptor{
		name:         name,
		fn:           fn,
		dependencies: depsCopy,
		resources:    resources,
		explicitly:   entry,
		order:        order,
	}
}

// get returns the descriptor for name, or UnknownStateError.
func (r *registry) get(name string) (*stateDescriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.states[name]
	if !ok {
		return nil, &UnknownStateError{Name: name}
	}
	return d, nil
}

// snapshot returns a defensive copy of all descriptors, ordered by insertion
// index, for use while building the dependency graph and ready set.
func (r *registry) snapshot() []*stateDescriptor {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*stateDescriptor, 0, len(r.states))
	for _, d := range r.states {
		out = append(out, d)
	}
	// Insertion-order sort: simple and stable since order indices are unique.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].order < out[j-1].order; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
