package agent

// dependencyGraph is the directed graph over state names built from static
// dependencies: an edge u -> v exists when u appears in v's dependency list.
// It is constructed fresh at the start of every run (spec.md §4.4).
type dependencyGraph struct {
	states map[string]*stateDescriptor
}

const (
	white = 0 // unvisited
	gray  = 1 // on the current DFS stack
	black = 2 // fully explored
)

// buildDependencyGraph validates that every dependency name resolves to a
// registered state and that the graph is acyclic, per spec.md §4.4. It
// returns UnresolvedDependencyError or CyclicGraphError on failure; both are
// fatal and the run must not start.
func buildDependencyGraph(descriptors []*stateDescriptor) (*dependencyGraph, error) {
	states := make(map[string]*stateDescriptor, len(descriptors))
	for _, d := range descriptors {
		states[d.name] = d
	}

	for _, d := range descriptors {
		for _, dep := range d.dependencies {
			if _, ok := states[dep]; !ok {
				return nil, &UnresolvedDependencyError{State: d.name, Dependency: dep}
			}
		}
	}

	g := &dependencyGraph{states: states}
	if cycle := g.findCycle(); cycle != nil {
		return nil, &CyclicGraphError{Cycle: cycle}
	}
	return g, nil
}

// findCycle runs a recursive DFS with three-color marking that walks from
// each state to its dependencies, and returns the first cycle found as a
// slice of state names, or nil if the graph is acyclic.
func (g *dependencyGraph) findCycle() []string {
	color := make(map[string]int, len(g.states))
	parent := make(map[string]string, len(g.states))

	var names []string
	for name := range g.states {
		names = append(names, name)
	}
	// Deterministic iteration order keeps cycle reporting stable across runs.
	sortStrings(names)

	var cycleStart, cycleEnd string
	found := false

	var visit func(name string) bool
	visit = func(name string) bool {
		color[name] = gray
		for _, next := range g.states[name].dependencies {
			if color[next] == gray {
				cycleStart, cycleEnd = next, name
				return true
			}
			if color[next] == white {
				parent[next] = name
				if visit(next) {
					return true
				}
			}
		}
		color[name] = black
		return false
	}

	for _, name := range names {
		if color[name] == white {
			if visit(name) {
				found = true
				break
			}
		}
	}
	if !found {
		return nil
	}

	path := []string{cycleStart}
	for cur := cycleEnd; cur != cycleStart; cur = parent[cur] {
		path = append(path, cur)
	}
	path = append(path, cycleStart)
	// path was built backwards from cycleEnd to cycleStart; reverse it so it
	// reads start -> ... -> end -> start.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// dependenciesSatisfied reports whether every dependency of name is present
// in completed.
func (g *dependencyGraph) dependenciesSatisfied(name string, completed map[string]bool) bool {
	for _, dep := range g.states[name].dependencies {
		if !completed[dep] {
			return false
		}
	}
	return true
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
