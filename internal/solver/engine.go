package solver

import (
	"go.uber.org/zap"

	"github.com/tartans-research/cba/internal/assignment"
	"github.com/tartans-research/cba/internal/constraint"
	"github.com/tartans-research/cba/internal/lattice"
	"github.com/tartans-research/cba/internal/logging"
	"github.com/tartans-research/cba/internal/valueid"
)

// Stats carries profiling counters for one solve (SPEC_FULL's profiling
// hook, not part of the core solve result).
type Stats struct {
	ConstraintsRegistered int
	WorklistPops          int
	Updates               int
	Grown                 int // Updates that reported Incremented or Altered
}

// engine is the single-threaded solve state shared by eager and lazy mode:
// the assignment, the registered constraints, the dependency graph, and the
// worklist. A fresh engine backs every solve (spec §9, "Global mutable
// state"); nothing here survives across calls to Solve/SolveLazy.
type engine struct {
	a           *assignment.Assignment
	constraints []constraint.Constraint
	graph       *depGraph
	wl          *worklist
	numOwner    map[int]valueid.Tag
	stats       Stats
}

func newEngine(a *assignment.Assignment) *engine {
	return &engine{
		a:        a,
		graph:    newDepGraph(),
		wl:       newWorklist(),
		numOwner: make(map[int]valueid.Tag),
	}
}

// checkOwner enforces LatticeConflict detection: the same id.Num() must
// always be declared under the same tag (spec §4.6).
func (e *engine) checkOwner(v valueid.ID) error {
	if existing, ok := e.numOwner[v.Num()]; ok {
		if existing != v.Tag() {
			return &LatticeConflictError{ID: v, Existing: existing, Declared: v.Tag()}
		}
		return nil
	}
	e.numOwner[v.Num()] = v.Tag()
	return nil
}

// register adds c to the engine, wires its statically declared inputs into
// the dependency graph, and enqueues it (spec §4.4 steps 1-2).
func (e *engine) register(c constraint.Constraint) (constraintID, error) {
	id := constraintID(len(e.constraints))
	e.constraints = append(e.constraints, c)
	e.stats.ConstraintsRegistered++

	for _, v := range c.Inputs() {
		if err := e.checkOwner(v); err != nil {
			return 0, err
		}
		e.graph.addEdge(v, id)
	}
	for _, v := range c.Outputs() {
		if err := e.checkOwner(v); err != nil {
			return 0, err
		}
	}
	e.wl.push(id)
	return id, nil
}

// runOne pops and updates a single constraint, propagating dependents whose
// watched outputs grew and registering any newly discovered dynamic inputs
// (spec §4.4 step 3, §9 "Dynamic dependencies"). It reports whether there
// was anything to pop, plus the full set of ValueIDs the popped constraint's
// UsedInputs reported (for static and dynamic constraints alike) so the
// lazy driver can check them against its resolved set.
func (e *engine) runOne() (popped bool, usedInputs []valueid.ID, err error) {
	id, ok := e.wl.pop()
	if !ok {
		return false, nil, nil
	}
	e.stats.WorklistPops++
	c := e.constraints[id]

	before := make(map[valueid.ID]lattice.Value, len(c.Outputs()))
	for _, v := range c.Outputs() {
		val, err := e.a.GetUntyped(v)
		if err != nil {
			return true, nil, &ConstraintUpdateError{Constraint: c, Cause: err}
		}
		before[v] = val
	}

	status, err := c.Update(e.a)
	if err != nil {
		return true, nil, &ConstraintUpdateError{Constraint: c, Cause: err}
	}
	e.stats.Updates++
	logging.Get(logging.CategoryWorklist).Debug("updated constraint", zap.Stringer("constraint", c), zap.Stringer("status", status))

	if status != constraint.Unchanged {
		e.stats.Grown++
		for _, v := range c.Outputs() {
			after, err := e.a.GetUntyped(v)
			if err != nil {
				return true, nil, err
			}
			l, ok := e.a.Registry().Lookup(v.Tag())
			if !ok {
				return true, nil, &assignment.UnknownLatticeError{Tag: v.Tag()}
			}
			if !l.Equal(before[v], after) {
				for _, dep := range e.graph.dependentsOf(v) {
					e.wl.push(dep)
				}
			}
		}
	}

	// UsedInputs is consulted for every constraint, not just ones that report
	// HasDynamicInputs: the contract guarantees it equals Inputs() for static
	// constraints, and the lazy driver needs that full set — including
	// statically-declared inputs — to know which variables still need
	// resolving (spec §4.5 step 4 only mentions dynamic-input constraints
	// explicitly, but a static subset_binary chain would never get its
	// operands resolved otherwise).
	used, err := c.UsedInputs(e.a)
	if err != nil {
		return true, nil, err
	}
	usedInputs = used
	for _, v := range used {
		if err := e.checkOwner(v); err != nil {
			return true, nil, err
		}
		if added := e.graph.addEdge(v, id); added && c.HasDynamicInputs() {
			logging.Get(logging.CategoryDependency).Debug("registered dynamic dependency", zap.Stringer("variable", v), zap.Stringer("constraint", c))
			if e.a.HasNonBottom(v) {
				e.wl.push(id)
			}
		}
	}

	return true, usedInputs, nil
}
