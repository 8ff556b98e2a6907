package emit

import "context"

// Emitter receives observability events from an agent run.
//
// Implementations should be non-blocking and thread-safe: Emit may be
// called concurrently from every in-flight state's goroutine, and must
// never panic or slow down scheduling.
type Emitter interface {
	// Emit sends a single observability event to the configured backend.
	Emit(event Event)

	// EmitBatch sends multiple events in one operation. Implementations
	// should preserve the given order and return an error only on
	// catastrophic, non-per-event failures.
	EmitBatch(ctx context.Context, events []Event) error

	// Flush blocks until all buffered events have been delivered, or ctx is
	// done. Safe to call multiple times.
	Flush(ctx context.Context) error
}
