// Package assignment implements the heterogeneous variable->value mapping
// described in spec §3/§4.2. Absent entries denote bottom; growth only ever
// happens through a lattice's Join, except for the deliberate Overwrite
// escape hatch used by "reset idiom" constraints (spec §4.3, §9).
package assignment

import (
	"fmt"
	"sync"

	"github.com/tartans-research/cba/internal/lattice"
	"github.com/tartans-research/cba/internal/valueid"
)

// TypeMismatchError is returned when a ValueID is read or written with a Go
// type that does not match its registered lattice's Value type.
type TypeMismatchError struct {
	ID   valueid.ID
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("assignment: type mismatch on %s: want %s, got %s", e.ID, e.Want, e.Got)
}

// UnknownLatticeError is returned when a ValueID's tag has no registered
// lattice.
type UnknownLatticeError struct {
	Tag valueid.Tag
}

func (e *UnknownLatticeError) Error() string {
	return fmt.Sprintf("assignment: lattice tag %q is not registered", e.Tag)
}

// Assignment is the heterogeneous mapping from ValueIDs to lattice values.
// It is owned exclusively by the executing solve (spec §5); the zero value
// is not usable, use New.
type Assignment struct {
	mu       sync.Mutex
	registry *lattice.Registry
	values   map[valueid.ID]lattice.Value
}

// New returns an empty assignment backed by reg. Every key is implicitly
// bottom until written.
func New(reg *lattice.Registry) *Assignment {
	return &Assignment{registry: reg, values: make(map[valueid.ID]lattice.Value)}
}

// Registry returns the lattice registry this assignment was built with.
func (a *Assignment) Registry() *lattice.Registry { return a.registry }

func (a *Assignment) latticeFor(id valueid.ID) (lattice.L, error) {
	l, ok := a.registry.Lookup(id.Tag())
	if !ok {
		return nil, &UnknownLatticeError{Tag: id.Tag()}
	}
	return l, nil
}

// GetUntyped returns the current value of id, materializing bottom if id has
// never been written.
func (a *Assignment) GetUntyped(id valueid.ID) (lattice.Value, error) {
	l, err := a.latticeFor(id)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if v, ok := a.values[id]; ok {
		return v, nil
	}
	return l.Bottom(), nil
}

// MeetAssignUntyped joins id's current value with src and stores the result.
func (a *Assignment) MeetAssignUntyped(id valueid.ID, src lattice.Value) (lattice.Change, error) {
	l, err := a.latticeFor(id)
	if err != nil {
		return lattice.Unchanged, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	cur, ok := a.values[id]
	if !ok {
		cur = l.Bottom()
	}
	joined, change := l.Join(cur, src)
	if change == lattice.Grew {
		a.values[id] = joined
	}
	return change, nil
}

// OverwriteUntyped force-replaces id's value without requiring growth. This
// is the sanctioned escape hatch for the "reset idiom" (spec §4.3's Altered
// status, §9 Design Notes): a constraint that legitimately needs to rewrite
// a variable to a new initial value reports Altered and calls this instead
// of MeetAssignUntyped. It must never be used to implement ordinary
// constraint updates — doing so would violate the "values never shrink"
// invariant everywhere else in the engine.
func (a *Assignment) OverwriteUntyped(id valueid.ID, val lattice.Value) error {
	l, err := a.latticeFor(id)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	cur, ok := a.values[id]
	if !ok {
		cur = l.Bottom()
	}
	if !l.Equal(cur, val) {
		a.values[id] = val
	}
	return nil
}

// HasNonBottom reports whether id currently holds a value other than its
// lattice's bottom. Used by the engine to decide whether a newly discovered
// dynamic dependency needs an immediate re-trigger (spec §4.4 step 3).
func (a *Assignment) HasNonBottom(id valueid.ID) bool {
	l, err := a.latticeFor(id)
	if err != nil {
		return false
	}
	a.mu.Lock()
	v, ok := a.values[id]
	a.mu.Unlock()
	if !ok {
		return false
	}
	return !l.Equal(v, l.Bottom())
}

// Snapshot returns a diagnostic copy of every explicitly-written entry.
// Absent keys (implicit bottom) are not included. Must not be used to drive
// solve results — it exists for diagnostics only (spec §6).
func (a *Assignment) Snapshot() map[valueid.ID]lattice.Value {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[valueid.ID]lattice.Value, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}

// Get reads a typed handle's current value, materializing bottom if absent.
func Get[V any](a *Assignment, v valueid.Typed[V]) (V, error) {
	var zero V
	raw, err := a.GetUntyped(v.Untyped())
	if err != nil {
		return zero, err
	}
	typed, ok := raw.(V)
	if !ok {
		return zero, &TypeMismatchError{ID: v.Untyped(), Want: fmt.Sprintf("%T", zero), Got: fmt.Sprintf("%T", raw)}
	}
	return typed, nil
}

// MeetAssign joins v's current value with val and stores the result,
// reporting whether it grew.
func MeetAssign[V any](a *Assignment, v valueid.Typed[V], val V) (lattice.Change, error) {
	return a.MeetAssignUntyped(v.Untyped(), val)
}

// Set seeds v directly, bypassing the monotone-growth check. Intended only
// for building the initial assignment handed to Solve/SolveLazy (spec §6's
// "Assignment::set<L>(v, val): test/seed use only") — never call this once a
// solve is underway.
func Set[V any](a *Assignment, v valueid.Typed[V], val V) error {
	return a.OverwriteUntyped(v.Untyped(), val)
}

// Overwrite is the typed form of OverwriteUntyped, for constraints
// implementing the reset idiom.
func Overwrite[V any](a *Assignment, v valueid.Typed[V], val V) error {
	return a.OverwriteUntyped(v.Untyped(), val)
}
