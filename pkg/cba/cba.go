// Package cba is a public shim over the module's internal packages. It lets
// external programs build lattices, assignments, and constraints and drive
// them through the solver without reaching into internal/*, which Go's
// visibility rules would otherwise forbid.
package cba

import (
	"github.com/tartans-research/cba/internal/assignment"
	"github.com/tartans-research/cba/internal/constraint"
	"github.com/tartans-research/cba/internal/constraint/examples"
	"github.com/tartans-research/cba/internal/diag"
	"github.com/tartans-research/cba/internal/lattice"
	"github.com/tartans-research/cba/internal/solver"
	"github.com/tartans-research/cba/internal/valueid"
)

// ValueID re-exports internal/valueid.
type (
	Tag          = valueid.Tag
	ID           = valueid.ID
	Typed[V any] = valueid.Typed[V]
)

var UntypedID = valueid.Untyped

// NewTypedID builds a Typed[V] ValueID. valueid.New is itself generic, so it
// cannot be re-exported as a package-level var without fixing V.
func NewTypedID[V any](tag Tag, num int) Typed[V] { return valueid.New[V](tag, num) }

func TypedFromID[V any](id ID) Typed[V] { return valueid.FromID[V](id) }

// Lattice re-exports internal/lattice.
type (
	Value             = lattice.Value
	Change            = lattice.Change
	L                 = lattice.L
	Registry          = lattice.Registry
	Set[T comparable] = lattice.Set[T]
	Pair              = lattice.Pair
	Product2Value     = lattice.Product2Value
)

const (
	Unchanged = lattice.Unchanged
	Grew      = lattice.Grew
)

var (
	NewRegistry = lattice.NewRegistry
	MaxInt      = lattice.MaxInt
	GrowingPair = lattice.GrowingPair
	Product2    = lattice.Product2
	SortedInts  = lattice.SortedInts
)

// NewPowerset and NewSet are re-exported as wrapper functions rather than
// var aliases since lattice.Powerset and lattice.NewSet are themselves
// generic.
func NewPowerset[T comparable]() L { return lattice.Powerset[T]() }

func NewSet[T comparable](elems ...T) Set[T] { return lattice.NewSet(elems...) }

// Assignment re-exports internal/assignment.
type (
	Assignment        = assignment.Assignment
	TypeMismatchError = assignment.TypeMismatchError
	UnknownLatticeError = assignment.UnknownLatticeError
)

var NewAssignment = assignment.New

// Get, MeetAssign, SetValue and Overwrite forward to the generic helpers in
// internal/assignment; they cannot be re-exported as vars because they are
// themselves generic functions.

func Get[V any](a *Assignment, v Typed[V]) (V, error) { return assignment.Get(a, v) }

func MeetAssign[V any](a *Assignment, v Typed[V], val V) (Change, error) {
	return assignment.MeetAssign(a, v, val)
}

func SetValue[V any](a *Assignment, v Typed[V], val V) error { return assignment.Set(a, v, val) }

func Overwrite[V any](a *Assignment, v Typed[V], val V) error {
	return assignment.Overwrite(a, v, val)
}

// Constraint re-exports internal/constraint.
type (
	Status     = constraint.Status
	Constraint = constraint.Constraint
)

const (
	StatusUnchanged  = constraint.Unchanged
	StatusIncremented = constraint.Incremented
	StatusAltered    = constraint.Altered
)

func Elem[T comparable](x T, s Typed[Set[T]]) Constraint { return constraint.Elem(x, s) }

func Subset[V any](from, to Typed[V]) Constraint { return constraint.Subset(from, to) }

func ConstSubset[V any](value V, to Typed[V]) Constraint { return constraint.ConstSubset(value, to) }

func SubsetIfElem[T comparable, V any](x T, s Typed[Set[T]], from, to Typed[V]) Constraint {
	return constraint.SubsetIfElem(x, s, from, to)
}

func SubsetIfBigger[T comparable, V any](s Typed[Set[T]], n int, from, to Typed[V]) Constraint {
	return constraint.SubsetIfBigger(s, n, from, to)
}

func SubsetIfReducedBigger[T comparable, V any](s Typed[Set[T]], t T, n int, from, to Typed[V]) Constraint {
	return constraint.SubsetIfReducedBigger(s, t, n, from, to)
}

func SubsetUnary[T, U comparable](from Typed[Set[T]], to Typed[Set[U]], f func(Set[T]) Set[U]) Constraint {
	return constraint.SubsetUnary(from, to, f)
}

func SubsetBinary[T, U, W comparable](left Typed[Set[T]], right Typed[Set[U]], to Typed[Set[W]], f func(Set[T], Set[U]) Set[W]) Constraint {
	return constraint.SubsetBinary(left, right, to, f)
}

// Worked-example constraints (internal/constraint/examples): these are the
// canonical reference for implementing constraint.Constraint directly rather
// than composing the canned shapes above.

func Collect[T comparable](setOfSets Typed[Set[ID]], out Typed[Set[T]]) Constraint {
	return examples.Collect[T](setOfSets, out)
}

func ElemIf[T comparable](x T, guard Typed[Set[T]], target ID, s Typed[Set[ID]]) Constraint {
	return examples.ElemIf(x, guard, target, s)
}

func Increment(from, to Typed[int], limit int) Constraint {
	return examples.Increment(from, to, limit)
}

// Solver re-exports internal/solver.
type (
	Stats                    = solver.Stats
	Resolver                 = solver.Resolver
	ConstraintUpdateError    = solver.ConstraintUpdateError
	LatticeConflictError     = solver.LatticeConflictError
	ResolverContradictionError = solver.ResolverContradictionError
)

var (
	ErrCancelled = solver.ErrCancelled
	Solve        = solver.Solve
	SolveLazy    = solver.SolveLazy
)

// Diagnostics re-exports internal/diag. Rendering never mutates the
// Assignment or the engine's internal state.
var (
	Render = diag.Render
	Dot    = diag.Dot
)
