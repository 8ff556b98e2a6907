package emit

import "context"

// NullEmitter implements Emitter by discarding every event. It is the
// default emitter for an Agent that has not been given one via
// agent.WithEmitter.
type NullEmitter struct{}

// NewNullEmitter creates an Emitter that discards all events.
func NewNullEmitter() *NullEmitter {
	return &NullEmitter{}
}

// Emit discards the event.
func (n *NullEmitter) Emit(Event) {}

// EmitBatch discards every event and always returns nil.
func (n *NullEmitter) EmitBatch(context.Context, []Event) error { return nil }

// Flush is a no-op.
func (n *NullEmitter) Flush(context.Context) error { return nil }
