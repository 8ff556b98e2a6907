package agent

import (
	"testing"
	"time"

	"github.com/dshills/agentflow-go/agent/emit"
)

func TestDefaultConfig(t *testing.T) {
	c := defaultConfig()
	if c.maxConcurrent != 0 {
		t.Errorf("maxConcurrent = %d, want 0 (unbounded)", c.maxConcurrent)
	}
	if c.explicitActivationOnly {
		t.Error("explicitActivationOnly should default to false")
	}
	if _, ok := c.emitter.(*emit.NullEmitter); !ok {
		t.Errorf("default emitter = %T, want *emit.NullEmitter", c.emitter)
	}
}

func TestOptionsApply(t *testing.T) {
	c := defaultConfig()
	opts := []Option{
		WithMaxConcurrent(4),
		WithExplicitActivationOnly(true),
		WithRetryBackoff(50 * time.Millisecond),
		WithDefaultStateTimeout(time.Second),
		WithRunWallClockBudget(time.Minute),
	}
	for _, opt := range opts {
		opt(&c)
	}

	if c.maxConcurrent != 4 {
		t.Errorf("maxConcurrent = %d, want 4", c.maxConcurrent)
	}
	if !c.explicitActivationOnly {
		t.Error("explicitActivationOnly should be true")
	}
	if c.retryBackoff != 50*time.Millisecond {
		t.Errorf("retryBackoff = %v, want 50ms", c.retryBackoff)
	}
	if c.defaultStateTimeout != time.Second {
		t.Errorf("defaultStateTimeout = %v, want 1s", c.defaultStateTimeout)
	}
	if c.runWallClockBudget != time.Minute {
		t.Errorf("runWallClockBudget = %v, want 1m", c.runWallClockBudget)
	}
}

func TestWithEmitterIgnoresNil(t *testing.T) {
	c := defaultConfig()
	original := c.emitter
	WithEmitter(nil)(&c)
	if c.emitter != original {
		t.Error("WithEmitter(nil) should not replace the default emitter")
	}
}
