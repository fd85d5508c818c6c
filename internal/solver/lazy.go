package solver

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tartans-research/cba/internal/assignment"
	"github.com/tartans-research/cba/internal/constraint"
	"github.com/tartans-research/cba/internal/lattice"
	"github.com/tartans-research/cba/internal/logging"
	"github.com/tartans-research/cba/internal/valueid"
)

// Resolver maps a batch of ValueIDs to the constraints that govern them
// (spec §4.5). It must be idempotent on already-resolved variables (may
// return them again; duplicates are filtered by the driver) and monotone
// across calls: later calls may reveal new constraints but must not
// contradict ones already returned for the same variable.
type Resolver func(vars []valueid.ID) ([]constraint.Constraint, error)

// SolveLazy runs the lazy algorithm (spec §4.5): starting from seeds, it
// asks resolver for the governing constraints, drains the worklist, and
// repeats for any variables reported by an updated constraint's UsedInputs
// (static or dynamic) that have never been resolved, until both the worklist and the unresolved set are
// empty. reg is the lattice registry backing every ValueID the resolver may
// ever mention; a fresh Assignment is built against it for this solve.
//
// Per-variable resolver calls within one round are dispatched concurrently
// via errgroup — resolver is expected to be pure and side-effect-free, so
// gathering its output in parallel is safe — but every registration and
// worklist update happens back on this goroutine, single-threaded, exactly
// as spec §5 requires of the Assignment.
func SolveLazy(ctx context.Context, reg *lattice.Registry, seeds []valueid.ID, resolver Resolver) (*assignment.Assignment, Stats, error) {
	a := assignment.New(reg)
	e := newEngine(a)

	resolved := make(map[valueid.ID]bool)
	firstSeenKeys := make(map[valueid.ID]map[string]bool)
	knownConstraints := make(map[string]bool)

	log := logging.Get(logging.CategoryLazy)
	toResolve := dedupeIDs(seeds)
	log.Debug("lazy solve starting", zap.Int("seeds", len(seeds)))

	for len(toResolve) > 0 || !e.wl.empty() {
		if len(toResolve) > 0 {
			log.Debug("resolving round", zap.Int("variables", len(toResolve)))
		}
		if err := resolveRound(ctx, e, resolver, toResolve, resolved, firstSeenKeys, knownConstraints); err != nil {
			if ctx.Err() != nil {
				return a, e.stats, ErrCancelled
			}
			return a, e.stats, err
		}
		toResolve = nil

		var pendingUnresolved []valueid.ID
		for {
			select {
			case <-ctx.Done():
				return a, e.stats, ErrCancelled
			default:
			}

			popped, used, err := e.runOne()
			if err != nil {
				return a, e.stats, err
			}
			if !popped {
				break
			}
			for _, v := range used {
				if !resolved[v] {
					pendingUnresolved = append(pendingUnresolved, v)
				}
			}
		}

		toResolve = dedupeIDs(pendingUnresolved)
	}

	log.Debug("lazy solve reached fixed point", zap.Int("constraints", e.stats.ConstraintsRegistered), zap.Int("updates", e.stats.Updates))
	return a, e.stats, nil
}

// resolveRound dispatches one resolver call per still-unresolved variable
// concurrently, merges the results deterministically (sorted by variable),
// and registers every newly seen constraint with the engine.
func resolveRound(ctx context.Context, e *engine, resolver Resolver, vars []valueid.ID, resolved map[valueid.ID]bool, firstSeenKeys map[valueid.ID]map[string]bool, knownConstraints map[string]bool) error {
	fresh := make([]valueid.ID, 0, len(vars))
	for _, v := range vars {
		if !resolved[v] {
			fresh = append(fresh, v)
		}
	}
	if len(fresh) == 0 {
		return nil
	}
	sort.Slice(fresh, func(i, j int) bool {
		if fresh[i].Tag() != fresh[j].Tag() {
			return fresh[i].Tag() < fresh[j].Tag()
		}
		return fresh[i].Num() < fresh[j].Num()
	})

	results := make([][]constraint.Constraint, len(fresh))
	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	for i, v := range fresh {
		i, v := i, v
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			cs, err := resolver([]valueid.ID{v})
			if err != nil {
				return err
			}
			mu.Lock()
			results[i] = cs
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, v := range fresh {
		keysThisCall := make(map[string]bool, len(results[i]))
		for _, c := range results[i] {
			keysThisCall[c.String()] = true
		}
		if prior, ok := firstSeenKeys[v]; ok {
			for k := range prior {
				if !keysThisCall[k] {
					return &ResolverContradictionError{ID: v}
				}
			}
			for k := range keysThisCall {
				prior[k] = true
			}
		} else {
			firstSeenKeys[v] = keysThisCall
		}
		resolved[v] = true

		for _, c := range results[i] {
			key := c.String()
			if knownConstraints[key] {
				continue
			}
			knownConstraints[key] = true
			if _, err := e.register(c); err != nil {
				return err
			}
		}
	}
	return nil
}

func dedupeIDs(ids []valueid.ID) []valueid.ID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[valueid.ID]bool, len(ids))
	out := make([]valueid.ID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
