package emit

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTelEmitter implements Emitter by creating an OpenTelemetry span per
// event. Each span is started and immediately ended, since engine events
// are instantaneous rather than long-lived spans of work.
type OTelEmitter struct {
	tracer trace.Tracer
}

// NewOTelEmitter creates an Emitter that records spans via tracer, e.g.
// otel.Tracer("agentflow").
func NewOTelEmitter(tracer trace.Tracer) *OTelEmitter {
	return &OTelEmitter{tracer: tracer}
}

// Emit records event as a completed span.
func (o *OTelEmitter) Emit(event Event) {
	o.emit(context.Background(), event)
}

func (o *OTelEmitter) emit(ctx context.Context, event Event) {
	_, span := o.tracer.Start(ctx, event.Msg)
	defer span.End()

	span.SetAttributes(
		attribute.String("run_id", event.RunID),
		attribute.String("state", event.State),
		attribute.Int("attempt", event.Attempt),
	)
	for k, v := range event.Meta {
		span.SetAttributes(attribute.String("meta."+k, toString(v)))
	}
	if errVal, ok := event.Meta["error"]; ok {
		span.SetStatus(codes.Error, toString(errVal))
	}
}

// EmitBatch records a span for every event in order.
func (o *OTelEmitter) EmitBatch(ctx context.Context, events []Event) error {
	for _, e := range events {
		o.emit(ctx, e)
	}
	return nil
}

// Flush is a no-op: spans are ended synchronously as they are emitted. The
// underlying TracerProvider's own exporter batching (if any) is the
// caller's responsibility to flush.
func (o *OTelEmitter) Flush(context.Context) error { return nil }

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(v)
}
