package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dshills/agentflow-go/agent/emit"
)

func TestRunAttemptsSucceedsFirstTry(t *testing.T) {
	d := &stateDescriptor{name: "s", resources: defaultResourceSpec(), fn: testStateFn}
	directive, attempts, err := runAttempts(context.Background(), d, newContext(nil), "run1", 0, 0, emit.NewNullEmitter(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
	if !directive.IsNone() {
		t.Errorf("directive = %v, want none", directive.Names())
	}
}

func TestRunAttemptsRetriesThenSucceeds(t *testing.T) {
	calls := 0
	fn := func(ctx context.Context, c *Context) (Directive, error) {
		calls++
		if calls < 3 {
			return Directive{}, errors.New("transient")
		}
		return None(), nil
	}
	d := &stateDescriptor{name: "s", fn: fn, resources: ResourceSpec{MaxRetries: 5}}

	_, attempts, err := runAttempts(context.Background(), d, newContext(nil), "run1", 0, 0, emit.NewNullEmitter(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestRunAttemptsExhaustsRetries(t *testing.T) {
	wantErr := errors.New("always fails")
	fn := func(ctx context.Context, c *Context) (Directive, error) {
		return Directive{}, wantErr
	}
	d := &stateDescriptor{name: "s", fn: fn, resources: ResourceSpec{MaxRetries: 2}}

	_, attempts, err := runAttempts(context.Background(), d, newContext(nil), "run1", 0, 0, emit.NewNullEmitter(), nil)
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3 (1 + 2 retries)", attempts)
	}
	var sfe *StateFailedError
	if !errors.As(err, &sfe) {
		t.Fatalf("error = %v, want *StateFailedError", err)
	}
	if !errors.Is(sfe, wantErr) {
		t.Errorf("expected wrapped error to unwrap to wantErr")
	}
}

func TestRunAttemptsTimesOut(t *testing.T) {
	fn := func(ctx context.Context, c *Context) (Directive, error) {
		<-ctx.Done()
		return Directive{}, ctx.Err()
	}
	d := &stateDescriptor{name: "s", fn: fn, resources: ResourceSpec{Timeout: 10 * time.Millisecond}}

	_, _, err := runAttempts(context.Background(), d, newContext(nil), "run1", 0, 0, emit.NewNullEmitter(), nil)
	var sfe *StateFailedError
	if !errors.As(err, &sfe) {
		t.Fatalf("error = %v, want *StateFailedError wrapping a timeout", err)
	}
	var timeoutErr *StateTimeoutError
	if !errors.As(sfe, &timeoutErr) {
		t.Fatalf("underlying error = %v, want *StateTimeoutError", sfe.Err)
	}
}

func TestRunAttemptsRespectsDefaultTimeoutWhenUnset(t *testing.T) {
	fn := func(ctx context.Context, c *Context) (Directive, error) {
		<-ctx.Done()
		return Directive{}, ctx.Err()
	}
	d := &stateDescriptor{name: "s", fn: fn, resources: defaultResourceSpec()}

	_, _, err := runAttempts(context.Background(), d, newContext(nil), "run1", 10*time.Millisecond, 0, emit.NewNullEmitter(), nil)
	var timeoutErr *StateTimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("error = %v, want *StateTimeoutError from the default timeout", err)
	}
}

func TestRunAttemptsAbortsOnCancelledRunContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := &stateDescriptor{name: "s", fn: testStateFn, resources: defaultResourceSpec()}
	_, attempts, err := runAttempts(ctx, d, newContext(nil), "run1", 0, 0, emit.NewNullEmitter(), nil)
	if err == nil {
		t.Fatal("expected error from a pre-cancelled run context")
	}
	if attempts != 0 {
		t.Errorf("attempts = %d, want 0 (never started)", attempts)
	}
}
