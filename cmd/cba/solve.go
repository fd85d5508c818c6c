package main

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tartans-research/cba/internal/diag"
	"github.com/tartans-research/cba/internal/fixture"
	"github.com/tartans-research/cba/internal/solver"
)

var watch bool

var solveCmd = &cobra.Command{
	Use:   "solve <fixture>",
	Short: "Solve a fixture program to a fixed point and print the assignment",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&watch, "watch", false, "re-solve whenever the fixture file changes")
}

func runSolve(cmd *cobra.Command, args []string) error {
	path, err := cfg.ResolveFixture(args[0])
	if err != nil {
		return err
	}

	if err := solveOnce(path); err != nil {
		return err
	}
	if !watch {
		return nil
	}
	return watchAndResolve(path)
}

func solveOnce(path string) error {
	correlationID := uuid.New()
	log := logger.With(zap.String("correlation_id", correlationID.String()), zap.String("fixture", path))

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

	log.Info("solving", zap.Int("constraints", len(constraints)))
	result, stats, err := solver.Solve(ctx, constraints, a)
	if err != nil {
		return fmt.Errorf("solve %s: %w", path, err)
	}
	log.Info("solved", zap.Int("updates", stats.Updates), zap.Int("pops", stats.WorklistPops))

	out, err := diag.Render(constraints, result)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// watchAndResolve mirrors the teacher's fsnotify-based config hot-reload:
// re-run the solve whenever the fixture file is written, until interrupted.
func watchAndResolve(path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := solveOnce(path); err != nil {
				fmt.Println(err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
