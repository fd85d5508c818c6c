package constraint

import (
	"fmt"

	"github.com/tartans-research/cba/internal/assignment"
	"github.com/tartans-research/cba/internal/lattice"
	"github.com/tartans-research/cba/internal/valueid"
)

// unaryTransferConstraint implements subset_unary(A, B, f): f(a[A]) ⊆ a[B].
type unaryTransferConstraint[T, U comparable] struct {
	from valueid.Typed[lattice.Set[T]]
	to   valueid.Typed[lattice.Set[U]]
	f    func(lattice.Set[T]) lattice.Set[U]
}

// SubsetUnary builds the canned constraint "f(a[A]) ⊆ a[B]" for a pure
// transfer function f over set values.
func SubsetUnary[T, U comparable](from valueid.Typed[lattice.Set[T]], to valueid.Typed[lattice.Set[U]], f func(lattice.Set[T]) lattice.Set[U]) Constraint {
	return &unaryTransferConstraint[T, U]{from: from, to: to, f: f}
}

func (c *unaryTransferConstraint[T, U]) Inputs() []valueid.ID  { return []valueid.ID{c.from.Untyped()} }
func (c *unaryTransferConstraint[T, U]) Outputs() []valueid.ID { return []valueid.ID{c.to.Untyped()} }
func (c *unaryTransferConstraint[T, U]) HasDynamicInputs() bool { return false }

func (c *unaryTransferConstraint[T, U]) UsedInputs(*assignment.Assignment) ([]valueid.ID, error) {
	return c.Inputs(), nil
}

func (c *unaryTransferConstraint[T, U]) Update(a *assignment.Assignment) (Status, error) {
	src, err := assignment.Get(a, c.from)
	if err != nil {
		return Unchanged, err
	}
	change, err := assignment.MeetAssign(a, c.to, c.f(src))
	if err != nil {
		return Unchanged, err
	}
	if change == lattice.Grew {
		return Incremented, nil
	}
	return Unchanged, nil
}

func (c *unaryTransferConstraint[T, U]) Check(a *assignment.Assignment) (bool, error) {
	src, err := assignment.Get(a, c.from)
	if err != nil {
		return false, err
	}
	dst, err := assignment.Get(a, c.to)
	if err != nil {
		return false, err
	}
	return c.f(src).SubsetOf(dst), nil
}

func (c *unaryTransferConstraint[T, U]) String() string {
	return fmt.Sprintf("subset_unary(%s, %s, f)", c.from, c.to)
}

// binaryTransferConstraint implements subset_binary(A, B, C, f):
// f(a[A], a[B]) ⊆ a[C].
type binaryTransferConstraint[T, U, W comparable] struct {
	left  valueid.Typed[lattice.Set[T]]
	right valueid.Typed[lattice.Set[U]]
	to    valueid.Typed[lattice.Set[W]]
	f     func(lattice.Set[T], lattice.Set[U]) lattice.Set[W]
}

// SubsetBinary builds the canned constraint "f(a[A], a[B]) ⊆ a[C]" for a pure
// transfer function f over two set values.
func SubsetBinary[T, U, W comparable](left valueid.Typed[lattice.Set[T]], right valueid.Typed[lattice.Set[U]], to valueid.Typed[lattice.Set[W]], f func(lattice.Set[T], lattice.Set[U]) lattice.Set[W]) Constraint {
	return &binaryTransferConstraint[T, U, W]{left: left, right: right, to: to, f: f}
}

func (c *binaryTransferConstraint[T, U, W]) Inputs() []valueid.ID {
	return []valueid.ID{c.left.Untyped(), c.right.Untyped()}
}
func (c *binaryTransferConstraint[T, U, W]) Outputs() []valueid.ID { return []valueid.ID{c.to.Untyped()} }
func (c *binaryTransferConstraint[T, U, W]) HasDynamicInputs() bool { return false }

func (c *binaryTransferConstraint[T, U, W]) UsedInputs(*assignment.Assignment) ([]valueid.ID, error) {
	return c.Inputs(), nil
}

func (c *binaryTransferConstraint[T, U, W]) Update(a *assignment.Assignment) (Status, error) {
	left, err := assignment.Get(a, c.left)
	if err != nil {
		return Unchanged, err
	}
	right, err := assignment.Get(a, c.right)
	if err != nil {
		return Unchanged, err
	}
	change, err := assignment.MeetAssign(a, c.to, c.f(left, right))
	if err != nil {
		return Unchanged, err
	}
	if change == lattice.Grew {
		return Incremented, nil
	}
	return Unchanged, nil
}

func (c *binaryTransferConstraint[T, U, W]) Check(a *assignment.Assignment) (bool, error) {
	left, err := assignment.Get(a, c.left)
	if err != nil {
		return false, err
	}
	right, err := assignment.Get(a, c.right)
	if err != nil {
		return false, err
	}
	dst, err := assignment.Get(a, c.to)
	if err != nil {
		return false, err
	}
	return c.f(left, right).SubsetOf(dst), nil
}

func (c *binaryTransferConstraint[T, U, W]) String() string {
	return fmt.Sprintf("subset_binary(%s, %s, %s, f)", c.left, c.right, c.to)
}
