// Package emit provides event emission and observability for agent runs.
package emit

// Event represents an observability event emitted during a single agent
// run: state dispatch, completion, retry, routing decisions and run-level
// start/failure events.
//
// Events are emitted to an Emitter which can log them, forward them to
// OpenTelemetry, or discard them entirely.
type Event struct {
	// RunID identifies the agent run that emitted this event.
	RunID string

	// State identifies which state emitted this event. Empty for run-level
	// events (run_start, run_complete, run_failed).
	State string

	// Attempt is the 0-based attempt number for state-level events.
	Attempt int

	// Msg is a short, machine-matchable description, e.g. "state_start",
	// "state_end", "state_retry", "state_failed", "routing".
	Msg string

	// Meta contains additional structured data specific to this event, e.g.
	// "duration_ms", "error", "activated" (the names a directive named).
	Meta map[string]interface{}
}
