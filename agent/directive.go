package agent

// Directive is a state's return value, interpreted by the router as
// instructions to additionally activate zero or more successor states.
//
// The source model (spec.md §4.5) uses a bare return value whose dynamic
// type determines routing: null, a single name, or a list of names. Here
// that is represented as the tagged value produced by None, Goto and
// GotoAll, per the design note in spec.md §9 ("a systems-language
// implementation should use a tagged variant").
type Directive struct {
	names []string
}

// None returns a Directive that activates no successor. Static successors of
// the returning state still progress normally once their dependencies are
// satisfied.
func None() Directive {
	return Directive{}
}

// Goto returns a Directive that activates the named state as soon as it is
// statically ready (or immediately, if it has no dependencies).
func Goto(name string) Directive {
	return Directive{names: []string{name}}
}

// GotoAll returns a Directive that activates every named state in parallel.
// Activation order follows the given order; execution itself is concurrent.
func GotoAll(names ...string) Directive {
	cp := make([]string, len(names))
	copy(cp, names)
	return Directive{names: cp}
}

// IsNone reports whether the directive names no successor states.
func (d Directive) IsNone() bool {
	return len(d.names) == 0
}

// Names returns the (possibly empty) list of states this directive activates.
func (d Directive) Names() []string {
	if len(d.names) == 0 {
		return nil
	}
	cp := make([]string, len(d.names))
	copy(cp, d.names)
	return cp
}
