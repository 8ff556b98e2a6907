package agent

import "time"

// ResourceSpec declares a state's advisory resource weights plus the two
// enforced controls: Timeout and MaxRetries. CPU and Memory are informational
// today — they are recorded and surfaced but not scheduled against, per
// spec.md §4.2 ("used by a future quota manager").
type ResourceSpec struct {
	// CPU is an advisory weight. Default 1.0.
	CPU float64
	// Memory is an advisory weight in informational units. Default 100.
	Memory int
	// Timeout is the hard wall-clock bound on a single attempt. Zero means
	// the agent's WithDefaultStateTimeout applies (no timeout if that is
	// also zero).
	Timeout time.Duration
	// MaxRetries is the number of additional attempts after the first
	// failure. Default 0.
	MaxRetries int
}

// defaultResourceSpec returns the defaults from spec.md §4.2.
func defaultResourceSpec() ResourceSpec {
	return ResourceSpec{CPU: 1.0, Memory: 100, Timeout: 0, MaxRetries: 0}
}

// Validate checks the invariants from spec.md §4.2: cpu >= 0, memory >= 0,
// timeout > 0 if set, max_retries >= 0.
func (r ResourceSpec) Validate(stateName string) error {
	if r.CPU < 0 {
		return &InvalidResourceSpecError{Name: stateName, Field: "cpu", Value: r.CPU}
	}
	if r.Memory < 0 {
		return &InvalidResourceSpecError{Name: stateName, Field: "memory", Value: r.Memory}
	}
	if r.Timeout < 0 {
		return &InvalidResourceSpecError{Name: stateName, Field: "timeout", Value: r.Timeout}
	}
	if r.MaxRetries < 0 {
		return &InvalidResourceSpecError{Name: stateName, Field: "max_retries", Value: r.MaxRetries}
	}
	return nil
}
