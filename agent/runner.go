package agent

import (
	"context"
	"time"

	"github.com/dshills/agentflow-go/agent/emit"
)

// runAttempts drives one state through the attempt/timeout/retry algorithm
// of spec.md §4.6: it invokes d.fn up to resources.MaxRetries+1 times,
// enforcing resources.Timeout (falling back to defaultTimeout) on each
// attempt, and returns the first successful Directive or a StateFailedError
// once retries are exhausted.
//
// runCtx is the run-scoped context; when the run is cancelled (terminal
// failure elsewhere, or the run's wall-clock budget elapses) any in-flight
// or not-yet-started attempt observes that at its next suspension point and
// this function returns promptly without exhausting the retry budget.
func runAttempts(runCtx context.Context, d *stateDescriptor, c *Context, runID string, defaultTimeout, backoff time.Duration, emitter emit.Emitter, metrics *PrometheusMetrics) (Directive, int, error) {
	timeout := d.resources.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	var lastErr error
	attempt := 0
	for {
		if err := runCtx.Err(); err != nil {
			return Directive{}, attempt, err
		}

		emitter.Emit(emit.Event{RunID: runID, State: d.name, Attempt: attempt, Msg: "state_start"})

		attemptCtx := runCtx
		var cancel context.CancelFunc
		if timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(runCtx, timeout)
		}

		start := time.Now()
		directive, err := d.fn(attemptCtx, c)
		duration := time.Since(start)

		timedOut := timeout > 0 && attemptCtx.Err() == context.DeadlineExceeded
		if cancel != nil {
			cancel()
		}

		if timedOut {
			lastErr = &StateTimeoutError{State: d.name, Timeout: timeout}
		} else if err != nil {
			lastErr = err
		} else {
			emitter.Emit(emit.Event{
				RunID: runID, State: d.name, Attempt: attempt, Msg: "state_end",
				Meta: map[string]interface{}{"duration_ms": duration.Milliseconds(), "activated": directive.Names()},
			})
			return directive, attempt + 1, nil
		}

		attempt++
		if attempt > d.resources.MaxRetries {
			return Directive{}, attempt, &StateFailedError{State: d.name, Attempts: attempt, Err: lastErr}
		}

		emitter.Emit(emit.Event{
			RunID: runID, State: d.name, Attempt: attempt - 1, Msg: "state_retry",
			Meta: map[string]interface{}{"error": lastErr.Error()},
		})
		metrics.retried()

		if backoff > 0 {
			select {
			case <-time.After(backoff):
			case <-runCtx.Done():
				return Directive{}, attempt, runCtx.Err()
			}
		}
	}
}
