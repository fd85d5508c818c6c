package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tartans-research/cba/internal/diag"
	"github.com/tartans-research/cba/internal/fixture"
	"github.com/tartans-research/cba/internal/solver"
)

var graphCmd = &cobra.Command{
	Use:   "graph <fixture>",
	Short: "Print the Graphviz dependency graph for a solved fixture program",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
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

	out, err := diag.Dot(constraints, result)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
