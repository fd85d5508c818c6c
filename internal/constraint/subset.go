package constraint

import (
	"fmt"

	"github.com/tartans-research/cba/internal/assignment"
	"github.com/tartans-research/cba/internal/lattice"
	"github.com/tartans-research/cba/internal/valueid"
)

// subsetConstraint implements the canned subset(A, B) shape: a[A] ⊆ a[B],
// generalized beyond powersets to "a[A] ⊑ a[B]" in any lattice.
type subsetConstraint[V any] struct {
	a valueid.Typed[V]
	b valueid.Typed[V]
}

// Subset builds the canned constraint "a[A] ⊑ a[B]" (spec §4.3's subset(A,B),
// generalized to any lattice rather than just powersets).
func Subset[V any](from, to valueid.Typed[V]) Constraint {
	return &subsetConstraint[V]{a: from, b: to}
}

func (c *subsetConstraint[V]) Inputs() []valueid.ID  { return []valueid.ID{c.a.Untyped()} }
func (c *subsetConstraint[V]) Outputs() []valueid.ID { return []valueid.ID{c.b.Untyped()} }
func (c *subsetConstraint[V]) HasDynamicInputs() bool { return false }

func (c *subsetConstraint[V]) UsedInputs(*assignment.Assignment) ([]valueid.ID, error) {
	return c.Inputs(), nil
}

func (c *subsetConstraint[V]) Update(a *assignment.Assignment) (Status, error) {
	src, err := assignment.Get(a, c.a)
	if err != nil {
		return Unchanged, err
	}
	change, err := assignment.MeetAssign(a, c.b, src)
	if err != nil {
		return Unchanged, err
	}
	if change == lattice.Grew {
		return Incremented, nil
	}
	return Unchanged, nil
}

func (c *subsetConstraint[V]) Check(a *assignment.Assignment) (bool, error) {
	return lessEq(a, c.a, c.b)
}

func (c *subsetConstraint[V]) String() string {
	return fmt.Sprintf("subset(%s, %s)", c.a, c.b)
}

// constSubsetConstraint implements a literal-left-hand variant of subset,
// needed for lattices without a notion of set membership (e.g. the
// growing-pair lattice in spec §8 scenario 4, where a constant Pair is
// injected directly rather than through an elem-style membership test).
type constSubsetConstraint[V any] struct {
	value V
	b     valueid.Typed[V]
}

// ConstSubset builds "value ⊑ a[B]" for a literal lattice value: the
// constant-injection counterpart of Subset, used where elem's
// set-membership framing does not apply.
func ConstSubset[V any](value V, to valueid.Typed[V]) Constraint {
	return &constSubsetConstraint[V]{value: value, b: to}
}

func (c *constSubsetConstraint[V]) Inputs() []valueid.ID  { return nil }
func (c *constSubsetConstraint[V]) Outputs() []valueid.ID { return []valueid.ID{c.b.Untyped()} }
func (c *constSubsetConstraint[V]) HasDynamicInputs() bool { return false }

func (c *constSubsetConstraint[V]) UsedInputs(*assignment.Assignment) ([]valueid.ID, error) {
	return nil, nil
}

func (c *constSubsetConstraint[V]) Update(a *assignment.Assignment) (Status, error) {
	change, err := assignment.MeetAssign(a, c.b, c.value)
	if err != nil {
		return Unchanged, err
	}
	if change == lattice.Grew {
		return Incremented, nil
	}
	return Unchanged, nil
}

func (c *constSubsetConstraint[V]) Check(a *assignment.Assignment) (bool, error) {
	l, ok := a.Registry().Lookup(c.b.Tag())
	if !ok {
		return false, &assignment.UnknownLatticeError{Tag: c.b.Tag()}
	}
	b, err := assignment.Get(a, c.b)
	if err != nil {
		return false, err
	}
	return l.Less(c.value, b), nil
}

func (c *constSubsetConstraint[V]) String() string {
	return fmt.Sprintf("subset(%v, %s)", c.value, c.b)
}

func lessEq[V any](a *assignment.Assignment, x, y valueid.Typed[V]) (bool, error) {
	l, ok := a.Registry().Lookup(x.Tag())
	if !ok {
		return false, &assignment.UnknownLatticeError{Tag: x.Tag()}
	}
	xv, err := assignment.Get(a, x)
	if err != nil {
		return false, err
	}
	yv, err := assignment.Get(a, y)
	if err != nil {
		return false, err
	}
	return l.Less(xv, yv), nil
}
