package constraint

import (
	"fmt"

	"github.com/tartans-research/cba/internal/assignment"
	"github.com/tartans-research/cba/internal/lattice"
	"github.com/tartans-research/cba/internal/valueid"
)

// elemConstraint implements the canned elem(x, S) shape: x ∈ a[S]. It has no
// inputs — its single output grows unconditionally, once, to include x.
type elemConstraint[T comparable] struct {
	x T
	s valueid.Typed[lattice.Set[T]]
}

// Elem builds the canned constraint "x ∈ a[S]" (spec §4.3 table). S must be
// a variable of a Powerset[T] lattice.
func Elem[T comparable](x T, s valueid.Typed[lattice.Set[T]]) Constraint {
	return &elemConstraint[T]{x: x, s: s}
}

func (c *elemConstraint[T]) Inputs() []valueid.ID  { return nil }
func (c *elemConstraint[T]) Outputs() []valueid.ID { return []valueid.ID{c.s.Untyped()} }
func (c *elemConstraint[T]) HasDynamicInputs() bool { return false }

func (c *elemConstraint[T]) UsedInputs(*assignment.Assignment) ([]valueid.ID, error) {
	return nil, nil
}

func (c *elemConstraint[T]) Update(a *assignment.Assignment) (Status, error) {
	change, err := assignment.MeetAssign(a, c.s, lattice.NewSet(c.x))
	if err != nil {
		return Unchanged, err
	}
	if change == lattice.Grew {
		return Incremented, nil
	}
	return Unchanged, nil
}

func (c *elemConstraint[T]) Check(a *assignment.Assignment) (bool, error) {
	s, err := assignment.Get(a, c.s)
	if err != nil {
		return false, err
	}
	return s.Contains(c.x), nil
}

func (c *elemConstraint[T]) String() string {
	return fmt.Sprintf("elem(%v, %s)", c.x, c.s)
}
