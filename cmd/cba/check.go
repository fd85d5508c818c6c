package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/tartans-research/cba/internal/fixture"
	"github.com/tartans-research/cba/internal/solver"
)

var checkCmd = &cobra.Command{
	Use:   "check <fixture>",
	Short: "Solve a fixture program and verify every constraint's fixed point holds",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	path, err := cfg.ResolveFixture(args[0])
	if err != nil {
		return err
	}
	prog, err := fixture.Load(path)
	if err != nil {
		return err
	}
	_, a, constraints, _, err := fixture.Build(prog)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if d := effectiveTimeout(); d > 0 {
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	result, _, err := solver.Solve(ctx, constraints, a)
	if err != nil {
		return fmt.Errorf("solve %s: %w", path, err)
	}

	failures := 0
	var errs error
	for _, c := range constraints {
		ok, err := c.Check(result)
		if err != nil {
			wrapped := fmt.Errorf("check %s: %w", c, err)
			if cfg.Solve.StrictConstraintErrors {
				return wrapped
			}
			// Non-strict mode keeps checking the rest of the constraints and
			// reports every Check error together at the end.
			errs = multierr.Append(errs, wrapped)
			continue
		}
		if !ok {
			failures++
			fmt.Printf("FAIL: %s\n", c)
		}
	}
	if errs != nil {
		return errs
	}
	if failures > 0 {
		return fmt.Errorf("check %s: %d constraint(s) not at fixed point", path, failures)
	}
	fmt.Printf("OK: %d constraints at fixed point\n", len(constraints))
	return nil
}
