// Package constraint defines the Constraint contract (spec §3, §4.3) and the
// canned constraint shapes every analysis built on the solver core can reuse
// instead of re-implementing the update/check/used-inputs boilerplate.
package constraint

import (
	"github.com/tartans-research/cba/internal/assignment"
	"github.com/tartans-research/cba/internal/valueid"
)

// Status classifies what Update did to a constraint's outputs.
type Status int

const (
	// Unchanged: outputs are bit-identical to before the call.
	Unchanged Status = iota
	// Incremented: at least one output strictly grew under its lattice's
	// join, and none shrank. The common case for monotone analyses.
	Incremented
	// Altered: outputs changed in a way the constraint itself deems
	// non-monotone (the reset idiom). The engine propagates dependents
	// exactly as for Incremented but must never treat an Altered result as
	// a cached final value.
	Altered
)

func (s Status) String() string {
	switch s {
	case Unchanged:
		return "Unchanged"
	case Incremented:
		return "Incremented"
	case Altered:
		return "Altered"
	default:
		return "Status(?)"
	}
}

// Constraint is the abstract contract of spec §3/§4.3. Implementations are
// immutable records of their declared inputs/outputs plus the three
// behaviors the engine drives to fixpoint.
type Constraint interface {
	// Inputs returns the statically declared input variables.
	Inputs() []valueid.ID
	// Outputs returns the variables this constraint may write to.
	Outputs() []valueid.ID
	// HasDynamicInputs reports whether UsedInputs may return variables
	// outside Inputs() once the assignment has grown enough to reveal them.
	HasDynamicInputs() bool
	// UsedInputs returns the input variables actually relevant given a's
	// current values. For constraints with HasDynamicInputs() == false this
	// must always return the same set as Inputs().
	UsedInputs(a *assignment.Assignment) ([]valueid.ID, error)
	// Update monotonically advances the constraint's outputs and reports
	// what changed.
	Update(a *assignment.Assignment) (Status, error)
	// Check reports whether the constraint's outputs already satisfy it,
	// i.e. whether a further Update would leave them unchanged.
	Check(a *assignment.Assignment) (bool, error)

	String() string
}
