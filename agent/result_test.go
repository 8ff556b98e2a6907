package agent

import "testing"

func TestResultGettersAndDefaults(t *testing.T) {
	c := newContext(nil)
	c.SetVariable("v", 1)
	c.SetOutput("o", 2)

	r := newResult(c, []string{"a"}, nil, nil)

	if got := r.GetVariable("v", nil); got != 1 {
		t.Errorf("GetVariable(v) = %v, want 1", got)
	}
	if got := r.GetVariable("missing", "def"); got != "def" {
		t.Errorf("GetVariable(missing) = %v, want def", got)
	}
	if got := r.GetOutput("o", nil); got != 2 {
		t.Errorf("GetOutput(o) = %v, want 2", got)
	}
	if got := r.GetOutput("missing", "def"); got != "def" {
		t.Errorf("GetOutput(missing) = %v, want def", got)
	}
}

func TestResultVariablesAndOutputsAreCopies(t *testing.T) {
	c := newContext(nil)
	c.SetVariable("v", 1)
	r := newResult(c, nil, nil, nil)

	vars := r.Variables()
	vars["v"] = 2
	if got := r.GetVariable("v", nil); got != 1 {
		t.Fatalf("mutating Variables() copy affected Result: %v", got)
	}
}

func TestResultRecordsFailuresAndErrors(t *testing.T) {
	c := newContext(nil)
	errs := map[string]error{"b": errBoom}
	r := newResult(c, []string{"a"}, []string{"b"}, errs)

	if len(r.Completed) != 1 || r.Completed[0] != "a" {
		t.Errorf("Completed = %v, want [a]", r.Completed)
	}
	if len(r.Failed) != 1 || r.Failed[0] != "b" {
		t.Errorf("Failed = %v, want [b]", r.Failed)
	}
	if r.Errors["b"] != errBoom {
		t.Errorf("Errors[b] = %v, want errBoom", r.Errors["b"])
	}
}
