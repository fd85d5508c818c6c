package constraint

import (
	"fmt"

	"github.com/tartans-research/cba/internal/assignment"
	"github.com/tartans-research/cba/internal/lattice"
	"github.com/tartans-research/cba/internal/valueid"
)

// subsetIfElemConstraint implements subset_if_elem(x, S, A, B): if x ∈ a[S]
// then a[A] ⊆ a[B]. The guard variable S is always a declared input; the
// body input A only becomes relevant once the guard holds, which is exactly
// the dynamic-dependency case spec §4.3/§9 calls out as the subsystem most
// worth studying.
type subsetIfElemConstraint[T comparable, V any] struct {
	x    T
	s    valueid.Typed[lattice.Set[T]]
	from valueid.Typed[V]
	to   valueid.Typed[V]
}

// SubsetIfElem builds the canned constraint "if x ∈ a[S] then a[A] ⊆ a[B]".
func SubsetIfElem[T comparable, V any](x T, s valueid.Typed[lattice.Set[T]], from, to valueid.Typed[V]) Constraint {
	return &subsetIfElemConstraint[T, V]{x: x, s: s, from: from, to: to}
}

func (c *subsetIfElemConstraint[T, V]) Inputs() []valueid.ID {
	return []valueid.ID{c.s.Untyped(), c.from.Untyped()}
}
func (c *subsetIfElemConstraint[T, V]) Outputs() []valueid.ID { return []valueid.ID{c.to.Untyped()} }
func (c *subsetIfElemConstraint[T, V]) HasDynamicInputs() bool { return true }

func (c *subsetIfElemConstraint[T, V]) guardHolds(a *assignment.Assignment) (bool, error) {
	s, err := assignment.Get(a, c.s)
	if err != nil {
		return false, err
	}
	return s.Contains(c.x), nil
}

func (c *subsetIfElemConstraint[T, V]) UsedInputs(a *assignment.Assignment) ([]valueid.ID, error) {
	holds, err := c.guardHolds(a)
	if err != nil {
		return nil, err
	}
	if !holds {
		return []valueid.ID{c.s.Untyped()}, nil
	}
	return c.Inputs(), nil
}

func (c *subsetIfElemConstraint[T, V]) Update(a *assignment.Assignment) (Status, error) {
	holds, err := c.guardHolds(a)
	if err != nil {
		return Unchanged, err
	}
	if !holds {
		return Unchanged, nil
	}
	src, err := assignment.Get(a, c.from)
	if err != nil {
		return Unchanged, err
	}
	change, err := assignment.MeetAssign(a, c.to, src)
	if err != nil {
		return Unchanged, err
	}
	if change == lattice.Grew {
		return Incremented, nil
	}
	return Unchanged, nil
}

func (c *subsetIfElemConstraint[T, V]) Check(a *assignment.Assignment) (bool, error) {
	holds, err := c.guardHolds(a)
	if err != nil {
		return false, err
	}
	if !holds {
		return true, nil
	}
	return lessEq(a, c.from, c.to)
}

func (c *subsetIfElemConstraint[T, V]) String() string {
	return fmt.Sprintf("subset_if_elem(%v, %s, %s, %s)", c.x, c.s, c.from, c.to)
}

// sizeGuardedSubset is shared plumbing for subset_if_bigger and
// subset_if_reduced_bigger: both guard a plain Subset on a cardinality test
// over the same set S.
type sizeGuardedSubset[T comparable, V any] struct {
	s         valueid.Typed[lattice.Set[T]]
	reduce    *T // non-nil for the "reduced" variant, removed from S before sizing
	threshold int
	from      valueid.Typed[V]
	to        valueid.Typed[V]
	name      string
}

// SubsetIfBigger builds subset_if_bigger(S, n, A, B): if |a[S]| > n then
// a[A] ⊆ a[B].
func SubsetIfBigger[T comparable, V any](s valueid.Typed[lattice.Set[T]], n int, from, to valueid.Typed[V]) Constraint {
	return &sizeGuardedSubset[T, V]{s: s, threshold: n, from: from, to: to, name: "subset_if_bigger"}
}

// SubsetIfReducedBigger builds subset_if_reduced_bigger(S, t, n, A, B): if
// |a[S] \ {t}| > n then a[A] ⊆ a[B].
func SubsetIfReducedBigger[T comparable, V any](s valueid.Typed[lattice.Set[T]], t T, n int, from, to valueid.Typed[V]) Constraint {
	tt := t
	return &sizeGuardedSubset[T, V]{s: s, reduce: &tt, threshold: n, from: from, to: to, name: "subset_if_reduced_bigger"}
}

func (c *sizeGuardedSubset[T, V]) Inputs() []valueid.ID {
	return []valueid.ID{c.s.Untyped(), c.from.Untyped()}
}
func (c *sizeGuardedSubset[T, V]) Outputs() []valueid.ID { return []valueid.ID{c.to.Untyped()} }
func (c *sizeGuardedSubset[T, V]) HasDynamicInputs() bool { return true }

// size returns the (possibly reduced) cardinality compared against the
// threshold. Per Design Notes §9, the comparison is pinned to unsigned
// arithmetic of at least 64 bits so that a threshold of size-1 behaves
// identically regardless of host int width.
func (c *sizeGuardedSubset[T, V]) size(a *assignment.Assignment) (uint64, error) {
	s, err := assignment.Get(a, c.s)
	if err != nil {
		return 0, err
	}
	n := s.Len()
	if c.reduce != nil && s.Contains(*c.reduce) {
		n--
	}
	return uint64(n), nil
}

func (c *sizeGuardedSubset[T, V]) guardHolds(a *assignment.Assignment) (bool, error) {
	n, err := c.size(a)
	if err != nil {
		return false, err
	}
	return n > uint64(c.threshold), nil
}

func (c *sizeGuardedSubset[T, V]) UsedInputs(a *assignment.Assignment) ([]valueid.ID, error) {
	holds, err := c.guardHolds(a)
	if err != nil {
		return nil, err
	}
	if !holds {
		return []valueid.ID{c.s.Untyped()}, nil
	}
	return c.Inputs(), nil
}

func (c *sizeGuardedSubset[T, V]) Update(a *assignment.Assignment) (Status, error) {
	holds, err := c.guardHolds(a)
	if err != nil {
		return Unchanged, err
	}
	if !holds {
		return Unchanged, nil
	}
	src, err := assignment.Get(a, c.from)
	if err != nil {
		return Unchanged, err
	}
	change, err := assignment.MeetAssign(a, c.to, src)
	if err != nil {
		return Unchanged, err
	}
	if change == lattice.Grew {
		return Incremented, nil
	}
	return Unchanged, nil
}

func (c *sizeGuardedSubset[T, V]) Check(a *assignment.Assignment) (bool, error) {
	holds, err := c.guardHolds(a)
	if err != nil {
		return false, err
	}
	if !holds {
		return true, nil
	}
	return lessEq(a, c.from, c.to)
}

func (c *sizeGuardedSubset[T, V]) String() string {
	if c.reduce != nil {
		return fmt.Sprintf("%s(%s, %v, %d, %s, %s)", c.name, c.s, *c.reduce, c.threshold, c.from, c.to)
	}
	return fmt.Sprintf("%s(%s, %d, %s, %s)", c.name, c.s, c.threshold, c.from, c.to)
}
