package solver

import "github.com/tartans-research/cba/internal/valueid"

// constraintID identifies a constraint within one engine's lifetime. It is
// never exposed outside the package.
type constraintID int

// depGraph tracks which constraints are registered as dependent on which
// ValueIDs (spec §4.4 step 1). Edges are added lazily as constraints
// register their declared inputs, and again as dynamic-input constraints
// discover new ones (spec §9, "Dynamic dependencies").
type depGraph struct {
	dependents map[valueid.ID][]constraintID
}

func newDepGraph() *depGraph {
	return &depGraph{dependents: make(map[valueid.ID][]constraintID)}
}

// addEdge registers c as dependent on v, reporting whether the edge is new.
func (g *depGraph) addEdge(v valueid.ID, c constraintID) bool {
	for _, existing := range g.dependents[v] {
		if existing == c {
			return false
		}
	}
	g.dependents[v] = append(g.dependents[v], c)
	return true
}

func (g *depGraph) dependentsOf(v valueid.ID) []constraintID {
	return g.dependents[v]
}
