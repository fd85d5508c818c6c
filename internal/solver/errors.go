package solver

import (
	"errors"
	"fmt"

	"github.com/tartans-research/cba/internal/constraint"
	"github.com/tartans-research/cba/internal/valueid"
)

// ErrCancelled is returned when a solve observes a cancelled context between
// worklist pops (spec §5, §7). The assignment returned alongside it holds
// every monotone update made so far and is always safe to read.
var ErrCancelled = errors.New("solver: cancelled")

// ConstraintUpdateError wraps an error raised while updating a constraint
// (spec §4.6, §7): one its Update returned, or one from reading its outputs
// just before the update. The assignment is left in the last consistent state: every
// update that succeeded before this one is preserved.
type ConstraintUpdateError struct {
	Constraint constraint.Constraint
	Cause      error
}

func (e *ConstraintUpdateError) Error() string {
	return fmt.Sprintf("solver: update failed for %s: %v", e.Constraint, e.Cause)
}

func (e *ConstraintUpdateError) Unwrap() error { return e.Cause }

// LatticeConflictError reports that two constraints declared incompatible
// lattices for the same numeric ValueID (spec §4.6): the same id.Num() was
// registered once under Existing and is now being registered under Declared.
type LatticeConflictError struct {
	ID       valueid.ID
	Existing valueid.Tag
	Declared valueid.Tag
}

func (e *LatticeConflictError) Error() string {
	return fmt.Sprintf("solver: lattice conflict on id %d: already tagged %q, now declared %q", e.ID.Num(), e.Existing, e.Declared)
}

// ResolverContradictionError reports that a lazy resolver returned a
// constraint set for a variable that omits a constraint it returned for that
// same variable on an earlier call — a violation of the monotone-resolver
// contract in spec §4.5.
type ResolverContradictionError struct {
	ID valueid.ID
}

func (e *ResolverContradictionError) Error() string {
	return fmt.Sprintf("solver: resolver retracted a previously-returned constraint governing %s", e.ID)
}
