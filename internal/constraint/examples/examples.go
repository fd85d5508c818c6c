// Package examples holds user-defined constraints that exist only to
// exercise parts of the Constraint protocol the canned shapes in
// internal/constraint don't: a dynamic-input constraint that reads a set of
// ValueIDs and dereferences each one (spec §8 scenario 6), and a
// non-monotone "reset idiom" constraint that legitimately reports Altered
// (spec §8 scenario 5). Analyses outside the core are expected to write
// constraints exactly this way — by implementing constraint.Constraint
// directly — so this package doubles as the worked example for that.
package examples

import (
	"fmt"
	"math"

	"github.com/tartans-research/cba/internal/assignment"
	"github.com/tartans-research/cba/internal/constraint"
	"github.com/tartans-research/cba/internal/lattice"
	"github.com/tartans-research/cba/internal/valueid"
)

// elemIfConstraint implements "if x ∈ a[guard] then target ∈ a[s]": a
// conditional membership constraint where, unlike subset_if_elem, the body
// is a constant rather than another variable's subset.
type elemIfConstraint[T comparable] struct {
	x      T
	guard  valueid.Typed[lattice.Set[T]]
	target valueid.ID
	s      valueid.Typed[lattice.Set[valueid.ID]]
}

// ElemIf builds "if x ∈ a[guard] then target ∈ a[S]", used to conditionally
// register one ValueID as a member of a set-of-ValueIDs variable.
func ElemIf[T comparable](x T, guard valueid.Typed[lattice.Set[T]], target valueid.ID, s valueid.Typed[lattice.Set[valueid.ID]]) constraint.Constraint {
	return &elemIfConstraint[T]{x: x, guard: guard, target: target, s: s}
}

func (c *elemIfConstraint[T]) Inputs() []valueid.ID  { return []valueid.ID{c.guard.Untyped()} }
func (c *elemIfConstraint[T]) Outputs() []valueid.ID { return []valueid.ID{c.s.Untyped()} }
func (c *elemIfConstraint[T]) HasDynamicInputs() bool { return false }

func (c *elemIfConstraint[T]) UsedInputs(*assignment.Assignment) ([]valueid.ID, error) {
	return c.Inputs(), nil
}

func (c *elemIfConstraint[T]) guardHolds(a *assignment.Assignment) (bool, error) {
	g, err := assignment.Get(a, c.guard)
	if err != nil {
		return false, err
	}
	return g.Contains(c.x), nil
}

func (c *elemIfConstraint[T]) Update(a *assignment.Assignment) (constraint.Status, error) {
	holds, err := c.guardHolds(a)
	if err != nil {
		return constraint.Unchanged, err
	}
	if !holds {
		return constraint.Unchanged, nil
	}
	change, err := assignment.MeetAssign(a, c.s, lattice.NewSet(c.target))
	if err != nil {
		return constraint.Unchanged, err
	}
	if change == lattice.Grew {
		return constraint.Incremented, nil
	}
	return constraint.Unchanged, nil
}

func (c *elemIfConstraint[T]) Check(a *assignment.Assignment) (bool, error) {
	holds, err := c.guardHolds(a)
	if err != nil {
		return false, err
	}
	if !holds {
		return true, nil
	}
	s, err := assignment.Get(a, c.s)
	if err != nil {
		return false, err
	}
	return s.Contains(c.target), nil
}

func (c *elemIfConstraint[T]) String() string {
	return fmt.Sprintf("elem_if(%v, %s, %s, %s)", c.x, c.guard, c.target, c.s)
}

// collectConstraint implements collect(SetOfSets, Out): Out accumulates the
// union of every variable currently listed in a[SetOfSets]. Its inputs are
// assignment-dependent in the strongest sense spec §4.4/§9 describe: the
// identity of the variables it reads is itself part of the assignment.
type collectConstraint[T comparable] struct {
	setOfSets valueid.Typed[lattice.Set[valueid.ID]]
	out       valueid.Typed[lattice.Set[T]]
}

// Collect builds "Out := ∪ { a[v] : v ∈ a[SetOfSets] }".
func Collect[T comparable](setOfSets valueid.Typed[lattice.Set[valueid.ID]], out valueid.Typed[lattice.Set[T]]) constraint.Constraint {
	return &collectConstraint[T]{setOfSets: setOfSets, out: out}
}

func (c *collectConstraint[T]) Inputs() []valueid.ID  { return []valueid.ID{c.setOfSets.Untyped()} }
func (c *collectConstraint[T]) Outputs() []valueid.ID { return []valueid.ID{c.out.Untyped()} }
func (c *collectConstraint[T]) HasDynamicInputs() bool { return true }

func (c *collectConstraint[T]) UsedInputs(a *assignment.Assignment) ([]valueid.ID, error) {
	members, err := assignment.Get(a, c.setOfSets)
	if err != nil {
		return nil, err
	}
	used := make([]valueid.ID, 0, len(members)+1)
	used = append(used, c.setOfSets.Untyped())
	used = append(used, members.Elements()...)
	return used, nil
}

func (c *collectConstraint[T]) Update(a *assignment.Assignment) (constraint.Status, error) {
	members, err := assignment.Get(a, c.setOfSets)
	if err != nil {
		return constraint.Unchanged, err
	}
	grew := false
	for _, id := range members.Elements() {
		raw, err := a.GetUntyped(id)
		if err != nil {
			return constraint.Unchanged, err
		}
		pointed, ok := raw.(lattice.Set[T])
		if !ok {
			return constraint.Unchanged, &assignment.TypeMismatchError{ID: id, Want: fmt.Sprintf("%T", lattice.Set[T]{}), Got: fmt.Sprintf("%T", raw)}
		}
		change, err := assignment.MeetAssign(a, c.out, pointed)
		if err != nil {
			return constraint.Unchanged, err
		}
		if change == lattice.Grew {
			grew = true
		}
	}
	if grew {
		return constraint.Incremented, nil
	}
	return constraint.Unchanged, nil
}

func (c *collectConstraint[T]) Check(a *assignment.Assignment) (bool, error) {
	members, err := assignment.Get(a, c.setOfSets)
	if err != nil {
		return false, err
	}
	out, err := assignment.Get(a, c.out)
	if err != nil {
		return false, err
	}
	for _, id := range members.Elements() {
		raw, err := a.GetUntyped(id)
		if err != nil {
			return false, err
		}
		pointed, ok := raw.(lattice.Set[T])
		if !ok {
			return false, &assignment.TypeMismatchError{ID: id, Want: fmt.Sprintf("%T", lattice.Set[T]{}), Got: fmt.Sprintf("%T", raw)}
		}
		if !pointed.SubsetOf(out) {
			return false, nil
		}
	}
	return true, nil
}

func (c *collectConstraint[T]) String() string {
	return fmt.Sprintf("collect(%s, %s)", c.setOfSets, c.out)
}

// incrementConstraint implements the "reset idiom" from spec §4.3/§8
// scenario 5: a counter that repeatedly overwrites its target with a fresh
// value derived from a source that is itself fed back around through a
// chain of Subset constraints, and reports Altered because the write is not
// a monotone join.
type incrementConstraint struct {
	from  valueid.Typed[int]
	to    valueid.Typed[int]
	limit int
}

// Increment builds a counter: while a[from] < limit, writes a[from]+1 into
// to (bottom reads as 0) and reports Altered; once a[from] >= limit it
// reports Unchanged. from and to must be variables of lattice.MaxInt().
func Increment(from, to valueid.Typed[int], limit int) constraint.Constraint {
	return &incrementConstraint{from: from, to: to, limit: limit}
}

func (c *incrementConstraint) Inputs() []valueid.ID  { return []valueid.ID{c.from.Untyped()} }
func (c *incrementConstraint) Outputs() []valueid.ID { return []valueid.ID{c.to.Untyped()} }
func (c *incrementConstraint) HasDynamicInputs() bool { return false }

func (c *incrementConstraint) UsedInputs(*assignment.Assignment) ([]valueid.ID, error) {
	return c.Inputs(), nil
}

func (c *incrementConstraint) base(a *assignment.Assignment) (int, error) {
	n, err := assignment.Get(a, c.from)
	if err != nil {
		return 0, err
	}
	if n == math.MinInt {
		return 0, nil
	}
	return n, nil
}

func (c *incrementConstraint) Update(a *assignment.Assignment) (constraint.Status, error) {
	base, err := c.base(a)
	if err != nil {
		return constraint.Unchanged, err
	}
	if base >= c.limit {
		return constraint.Unchanged, nil
	}
	if err := assignment.Overwrite(a, c.to, base+1); err != nil {
		return constraint.Unchanged, err
	}
	return constraint.Altered, nil
}

func (c *incrementConstraint) Check(a *assignment.Assignment) (bool, error) {
	base, err := c.base(a)
	if err != nil {
		return false, err
	}
	return base >= c.limit, nil
}

func (c *incrementConstraint) String() string {
	return fmt.Sprintf("increment(%s, %s, limit=%d)", c.from, c.to, c.limit)
}
