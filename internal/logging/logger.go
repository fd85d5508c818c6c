// Package logging provides categorized, zap-backed structured logging for
// the solver core and its CLI. Each category gets its own *zap.Logger built
// once and cached; callers fetch one with Get and log through it directly
// rather than through package-level wrapper functions, matching how the
// rest of the module keeps logging thin.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names the subsystem a logger's output belongs to.
type Category string

const (
	CategoryEngine     Category = "engine"     // eager Solve lifecycle
	CategoryWorklist   Category = "worklist"   // per-pop update tracing
	CategoryLazy       Category = "lazy"       // lazy resolver rounds
	CategoryDependency Category = "dependency" // dependency graph edge registration
	CategoryCLI        Category = "cli"        // cmd/cba command execution
)

var (
	mu      sync.Mutex
	base    *zap.Logger
	cache   = make(map[Category]*zap.Logger)
	debug   bool
	started bool
)

// Configure sets the base zap configuration for every logger Get returns
// afterward. Call once at process startup (cmd/cba's PersistentPreRunE);
// safe to call again in tests to reset state.
func Configure(verbose bool) error {
	mu.Lock()
	defer mu.Unlock()

	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("logging: failed to build base logger: %w", err)
	}
	base = l
	debug = verbose
	started = true
	cache = make(map[Category]*zap.Logger)
	return nil
}

// Get returns the logger for category, configuring a default zap
// production logger (info level; a no-op logger only if that cannot be
// built) on first use if Configure was never called — solver packages are
// usable as a library without any CLI wiring.
func Get(category Category) *zap.Logger {
	mu.Lock()
	defer mu.Unlock()

	if !started {
		l, err := zap.NewProduction()
		if err != nil {
			l = zap.NewNop()
		}
		base = l
		started = true
	}
	if l, ok := cache[category]; ok {
		return l
	}
	l := base.With(zap.String("category", string(category)))
	cache[category] = l
	return l
}

// Sync flushes every cached logger. Call from PersistentPostRun; errors
// syncing stderr/stdout on some platforms are expected and ignored.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if base != nil {
		_ = base.Sync()
	}
	for _, l := range cache {
		_ = l.Sync()
	}
}

// IsDebug reports whether Configure was last called with verbose logging.
func IsDebug() bool {
	mu.Lock()
	defer mu.Unlock()
	return debug
}
