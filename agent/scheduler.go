package agent

import (
	"context"

	"github.com/dshills/agentflow-go/agent/emit"
	"github.com/panjf2000/ants/v2"
)

// execState tracks per-agent-run bookkeeping: which states have completed,
// are running, failed, or have been activated (statically as an entry or
// dynamically by a directive), plus attempt counts and last errors. This is
// spec.md §3's "Run state".
type execState struct {
	completed map[string]bool
	running   map[string]bool
	failed    map[string]bool
	activated map[string]bool
	attempts  map[string]int
	lastErr   map[string]error

	completedOrder []string
	failedOrder    []string
}

func newExecState() *execState {
	return &execState{
		completed: make(map[string]bool),
		running:   make(map[string]bool),
		failed:    make(map[string]bool),
		activated: make(map[string]bool),
		attempts:  make(map[string]int),
		lastErr:   make(map[string]error),
	}
}

// completionMsg is sent back to the dispatch loop when a state attempt
// sequence (success or terminal failure) finishes.
type completionMsg struct {
	name      string
	directive Directive
	attempts  int
	err       error
}

// computeEntrySet returns the set of state names enqueued at run start:
// explicitly designated entries if any exist, otherwise every state with an
// empty dependency list, per spec.md §4.5.
func computeEntrySet(descriptors []*stateDescriptor) map[string]bool {
	entries := make(map[string]bool)
	hasExplicit := false
	for _, d := range descriptors {
		if d.explicitly {
			entries[d.name] = true
			hasExplicit = true
		}
	}
	if hasExplicit {
		return entries
	}
	for _, d := range descriptors {
		if len(d.dependencies) == 0 {
			entries[d.name] = true
		}
	}
	return entries
}

// dispatchable reports whether name may be dispatched right now: its
// dependencies are satisfied, it is not already completed or running, and
// it passes the activation rule for the configured scheduler mode
// (spec.md §4.5).
func dispatchable(name string, d *stateDescriptor, g *dependencyGraph, rs *execState, explicitActivationOnly bool) bool {
	if rs.completed[name] || rs.running[name] {
		return false
	}
	if !g.dependenciesSatisfied(name, rs.completed) {
		return false
	}
	if explicitActivationOnly {
		return rs.activated[name]
	}
	// static-only mode: a state with dependencies runs automatically once
	// they're satisfied; a state with none needs to be activated (as an
	// entry, or by a directive).
	if len(d.dependencies) > 0 {
		return true
	}
	return rs.activated[name]
}

// applyDirective marks every name the directive points at as activated,
// skipping names that are already completed, already running, or unknown —
// directives naming a finished or in-flight state are idempotent no-ops
// (spec.md §4.5).
func applyDirective(d Directive, byName map[string]*stateDescriptor, rs *execState) {
	for _, next := range d.Names() {
		if rs.completed[next] || rs.running[next] {
			continue
		}
		if _, ok := byName[next]; ok {
			rs.activated[next] = true
		}
	}
}

// runSchedule executes the scheduler/task-runner/dynamic-router loop of spec.md
// §4.5-§4.7 to completion and returns the assembled Result.
func runSchedule(ctx context.Context, a *Agent, c *Context, runID string) (*Result, error) {
	descriptors := a.registry.snapshot()

	for _, d := range descriptors {
		if err := d.resources.Validate(d.name); err != nil {
			return nil, err
		}
	}

	graph, err := buildDependencyGraph(descriptors)
	if err != nil {
		return nil, err
	}

	entrySet := computeEntrySet(descriptors)
	if len(entrySet) == 0 {
		return nil, &NoEntryPointError{}
	}

	rs := newExecState()
	for name := range entrySet {
		rs.activated[name] = true
	}

	byName := make(map[string]*stateDescriptor, len(descriptors))
	for _, d := range descriptors {
		byName[d.name] = d
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	if a.cfg.runWallClockBudget > 0 {
		var budgetCancel context.CancelFunc
		runCtx, budgetCancel = context.WithTimeout(runCtx, a.cfg.runWallClockBudget)
		defer budgetCancel()
	}

	var pool *ants.Pool
	if a.cfg.maxConcurrent > 0 {
		pool, err = ants.NewPool(a.cfg.maxConcurrent)
		if err != nil {
			return nil, err
		}
		defer pool.Release()
	}

	emitter := a.cfg.emitter
	metrics := a.cfg.metrics
	emitter.Emit(emit.Event{RunID: runID, Msg: "run_start"})

	completions := make(chan completionMsg, len(descriptors))
	running := 0

	submit := func(d *stateDescriptor) {
		task := func() {
			directive, attempts, err := runAttempts(runCtx, d, c, runID, a.cfg.defaultStateTimeout, a.cfg.retryBackoff, emitter, metrics)
			completions <- completionMsg{name: d.name, directive: directive, attempts: attempts, err: err}
		}
		if pool != nil {
			if err := pool.Submit(task); err != nil {
				completions <- completionMsg{name: d.name, err: err}
				return
			}
		} else {
			go task()
		}
	}

	dispatch := func() {
		pending := 0
		for _, d := range descriptors {
			if dispatchable(d.name, d, graph, rs, a.cfg.explicitActivationOnly) {
				rs.running[d.name] = true
				running++
				metrics.stateStarted()
				submit(d)
			} else if !rs.completed[d.name] && !rs.running[d.name] && graph.dependenciesSatisfied(d.name, rs.completed) {
				pending++
			}
		}
		metrics.setPending(pending)
	}

	dispatch()

	var terminal *RunFailedError
	for running > 0 {
		msg := <-completions
		running--
		delete(rs.running, msg.name)
		metrics.stateFinished()

		if msg.err != nil {
			rs.failed[msg.name] = true
			rs.failedOrder = append(rs.failedOrder, msg.name)
			rs.attempts[msg.name] = msg.attempts
			rs.lastErr[msg.name] = msg.err
			metrics.stateFailed()
			emitter.Emit(emit.Event{RunID: runID, State: msg.name, Msg: "state_failed", Meta: map[string]interface{}{"error": msg.err.Error()}})

			if terminal == nil {
				cancelRun()
				terminal = &RunFailedError{State: msg.name, Attempts: msg.attempts, Err: msg.err}
			}
			continue
		}

		rs.completed[msg.name] = true
		rs.completedOrder = append(rs.completedOrder, msg.name)
		metrics.stateCompleted()
		emitter.Emit(emit.Event{RunID: runID, State: msg.name, Msg: "routing", Meta: map[string]interface{}{"activated": msg.directive.Names()}})

		applyDirective(msg.directive, byName, rs)

		if terminal == nil {
			dispatch()
		}
	}

	result := newResult(c, rs.completedOrder, rs.failedOrder, rs.lastErr)
	if terminal != nil {
		terminal.Result = result
		emitter.Emit(emit.Event{RunID: runID, Msg: "run_failed", Meta: map[string]interface{}{"state": terminal.State}})
		return result, terminal
	}
	emitter.Emit(emit.Event{RunID: runID, Msg: "run_complete"})
	return result, nil
}
