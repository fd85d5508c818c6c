// Package main implements cba, the demonstration/debugging CLI for the
// solver core: it drives fixture programs (testdata/*.yaml) through the
// eager and lazy solvers and renders the result, the dependency graph, or a
// fixed-point check. It is not a front-end for any specific static analysis
// — those remain external collaborators of the core (SPEC_FULL.md).
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tartans-research/cba/internal/config"
	"github.com/tartans-research/cba/internal/logging"
)

var (
	verbose    bool
	configPath string
	timeout    time.Duration

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cba",
	Short: "Drive the CBA constraint solver against fixture programs",
	Long: `cba is the demonstration CLI for the CBA monotone constraint solver.

It loads a YAML fixture program, registers its constraints with the solver,
and reports the resulting assignment, its dependency graph, or whether
every constraint's fixed point already holds.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Configure(verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = logging.Get(logging.CategoryCLI)

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if verbose {
			cfg.Logging.Verbose = true
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "cba.yaml", "path to a cba.yaml config file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "solve timeout (0 = use the config's default_timeout)")

	rootCmd.AddCommand(solveCmd, solveLazyCmd, graphCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// effectiveTimeout returns the --timeout override, falling back to the
// loaded config's solve.default_timeout.
func effectiveTimeout() time.Duration {
	if timeout > 0 {
		return timeout
	}
	return cfg.Solve.DefaultTimeout
}
