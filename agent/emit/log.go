package emit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LogEmitter implements Emitter by writing structured output to an
// io.Writer, in either a human-readable text format or JSONL.
type LogEmitter struct {
	writer   io.Writer
	jsonMode bool
}

// NewLogEmitter creates a LogEmitter. If writer is nil, os.Stdout is used.
func NewLogEmitter(writer io.Writer, jsonMode bool) *LogEmitter {
	if writer == nil {
		writer = os.Stdout
	}
	return &LogEmitter{writer: writer, jsonMode: jsonMode}
}

// Emit writes a single event in the configured format.
func (l *LogEmitter) Emit(event Event) {
	if l.jsonMode {
		l.emitJSON(event)
		return
	}
	l.emitText(event)
}

func (l *LogEmitter) emitJSON(event Event) {
	data, err := json.Marshal(struct {
		RunID   string                 `json:"runID"`
		State   string                 `json:"state"`
		Attempt int                    `json:"attempt"`
		Msg     string                 `json:"msg"`
		Meta    map[string]interface{} `json:"meta,omitempty"`
	}{
		RunID:   event.RunID,
		State:   event.State,
		Attempt: event.Attempt,
		Msg:     event.Msg,
		Meta:    event.Meta,
	})
	if err != nil {
		_, _ = fmt.Fprintf(l.writer, "{\"error\":\"failed to marshal event: %v\"}\n", err)
		return
	}
	_, _ = fmt.Fprintf(l.writer, "%s\n", data)
}

func (l *LogEmitter) emitText(event Event) {
	_, _ = fmt.Fprintf(l.writer, "[%s] runID=%s state=%s attempt=%d", event.Msg, event.RunID, event.State, event.Attempt)
	if len(event.Meta) > 0 {
		if metaJSON, err := json.Marshal(event.Meta); err == nil {
			_, _ = fmt.Fprintf(l.writer, " meta=%s", metaJSON)
		} else {
			_, _ = fmt.Fprintf(l.writer, " meta=%v", event.Meta)
		}
	}
	_, _ = fmt.Fprint(l.writer, "\n")
}

// EmitBatch writes every event in order.
func (l *LogEmitter) EmitBatch(_ context.Context, events []Event) error {
	for _, e := range events {
		l.Emit(e)
	}
	return nil
}

// Flush is a no-op: LogEmitter writes synchronously with no internal buffer.
func (l *LogEmitter) Flush(context.Context) error { return nil }
