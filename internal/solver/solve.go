// Package solver drives a set of constraints to a fixed point over an
// Assignment: the eager mode (spec §4.4) runs a fully-known constraint set
// to completion; the lazy mode (spec §4.5) discovers constraints on demand
// from a resolver, restricted to whatever transitively matters for a seed.
package solver

import (
	"context"

	"go.uber.org/zap"

	"github.com/tartans-research/cba/internal/assignment"
	"github.com/tartans-research/cba/internal/constraint"
	"github.com/tartans-research/cba/internal/logging"
)

// Solve runs the eager algorithm to completion: every constraint is placed
// on the worklist, then popped and updated until none remain (spec §4.4).
// seed must be a non-nil Assignment built with assignment.New against the
// registry the constraints' ValueIDs belong to; pass a freshly constructed
// one for an empty seed. The returned Assignment is seed, mutated in place.
//
// Cancellation is cooperative: ctx is checked between worklist pops, never
// mid-Update. If cancelled, Solve returns the current assignment, the stats
// gathered so far, and ErrCancelled; every update applied before the check
// is preserved and safe to read.
func Solve(ctx context.Context, constraints []constraint.Constraint, seed *assignment.Assignment) (*assignment.Assignment, Stats, error) {
	log := logging.Get(logging.CategoryEngine)
	e := newEngine(seed)
	for _, c := range constraints {
		if _, err := e.register(c); err != nil {
			return seed, e.stats, err
		}
	}
	log.Debug("eager solve starting", zap.Int("constraints", len(constraints)))

	for {
		select {
		case <-ctx.Done():
			log.Info("eager solve cancelled", zap.Int("updates", e.stats.Updates))
			return seed, e.stats, ErrCancelled
		default:
		}

		popped, _, err := e.runOne()
		if err != nil {
			return seed, e.stats, err
		}
		if !popped {
			log.Debug("eager solve reached fixed point", zap.Int("updates", e.stats.Updates), zap.Int("pops", e.stats.WorklistPops))
			return seed, e.stats, nil
		}
	}
}
