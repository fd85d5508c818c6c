// Package valueid defines the opaque handles that identify variables across
// the solver core. An ID is a (lattice tag, integer) pair: cheap to copy,
// never mutated, and never freed by the core — constraints and the engine
// pass IDs around by value and let the Assignment own the actual data.
package valueid

import "fmt"

// Tag names a lattice registered with a lattice.Registry. Two IDs with
// different tags are always distinct variables, even if their integer part
// collides — see internal/solver's LatticeConflictError for what happens
// when a careless caller reuses an integer across tags.
type Tag string

// ID is the type-erased handle used internally by the dependency graph,
// worklist, and Constraint interface, where variables of many different
// lattices must coexist in the same maps and slices.
type ID struct {
	tag Tag
	num int
}

// Untyped constructs an ID directly. Exported for the constraint and solver
// packages, which only ever see type-erased IDs.
func Untyped(tag Tag, num int) ID { return ID{tag: tag, num: num} }

// Tag returns the lattice this variable belongs to.
func (v ID) Tag() Tag { return v.tag }

// Num returns the variable's integer component.
func (v ID) Num() int { return v.num }

func (v ID) String() string { return fmt.Sprintf("%s#%d", v.tag, v.num) }

// Typed pairs an ID with a phantom value type V. Canned constraint
// constructors and Assignment's generic accessors take and return Typed
// handles so that mismatched lattices are caught at compile time wherever
// possible, before they ever reach the type-erased core.
type Typed[V any] struct {
	id ID
}

// New mints a typed handle in lattice tag with integer num. Clients
// (constraint generators, test fixtures) are responsible for choosing a
// Tag consistent with the registered lattice.L whose Value type is V.
func New[V any](tag Tag, num int) Typed[V] {
	return Typed[V]{id: ID{tag: tag, num: num}}
}

// FromID wraps an already type-erased ID, asserting (without runtime check)
// that it belongs to a lattice whose value type is V. Used by
// internal/fixture to turn the untyped IDs it assigns to variable names
// back into typed handles.
func FromID[V any](id ID) Typed[V] { return Typed[V]{id: id} }

func (t Typed[V]) Untyped() ID { return t.id }
func (t Typed[V]) Tag() Tag    { return t.id.tag }
func (t Typed[V]) Num() int    { return t.id.num }
func (t Typed[V]) String() string { return t.id.String() }
