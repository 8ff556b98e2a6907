package agent

import (
	"time"

	"github.com/dshills/agentflow-go/agent/emit"
)

// config collects the functional options applied at New().
type config struct {
	maxConcurrent          int
	explicitActivationOnly bool
	retryBackoff           time.Duration
	defaultStateTimeout    time.Duration
	emitter                emit.Emitter
	metrics                *PrometheusMetrics
	runWallClockBudget     time.Duration
}

func defaultConfig() config {
	return config{
		maxConcurrent: 0, // 0 = unbounded
		retryBackoff:  0,
		emitter:       emit.NewNullEmitter(),
	}
}

// Option configures an Agent at construction time.
type Option func(*config)

// WithMaxConcurrent caps the number of states dispatched concurrently. A
// value <= 0 (the default) means unbounded — every dispatchable state is
// started immediately.
func WithMaxConcurrent(n int) Option {
	return func(c *config) { c.maxConcurrent = n }
}

// WithExplicitActivationOnly switches the scheduler from the default
// static-only mode (a state with dependencies runs automatically once its
// dependencies complete) to explicit-activation-only mode (a state runs only
// once named by a directive or as an entry), per spec.md §4.5 and §9's open
// question on activation semantics.
func WithExplicitActivationOnly(enabled bool) Option {
	return func(c *config) { c.explicitActivationOnly = enabled }
}

// WithRetryBackoff sets a constant delay applied between retry attempts.
// spec.md §4.6 leaves backoff unspecified; the default is zero (retry
// immediately).
func WithRetryBackoff(d time.Duration) Option {
	return func(c *config) { c.retryBackoff = d }
}

// WithDefaultStateTimeout sets the timeout applied to states that do not
// declare their own via ResourceSpec.Timeout. Zero (the default) means no
// timeout is applied unless a state declares one.
func WithDefaultStateTimeout(d time.Duration) Option {
	return func(c *config) { c.defaultStateTimeout = d }
}

// WithEmitter sets the observability sink for engine lifecycle events.
// The default is emit.NewNullEmitter(), which discards every event.
func WithEmitter(e emit.Emitter) Option {
	return func(c *config) {
		if e != nil {
			c.emitter = e
		}
	}
}

// WithMetrics enables Prometheus metrics collection for this agent's runs.
func WithMetrics(m *PrometheusMetrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithRunWallClockBudget bounds the total wall-clock time of a single Run()
// call. Zero (the default) disables the budget.
func WithRunWallClockBudget(d time.Duration) Option {
	return func(c *config) { c.runWallClockBudget = d }
}
