// Package config holds cmd/cba's settings: where to find fixture programs,
// how long an unattended solve may run before being cancelled, and the
// diagnostic logger's verbosity. It follows the teacher's config shape — a
// root Config of nested YAML-tagged sub-configs with a DefaultConfig
// constructor — scoped down to what a solver CLI actually needs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for cmd/cba.
type Config struct {
	// Solve holds settings governing how a solve is driven.
	Solve SolveConfig `yaml:"solve"`

	// Logging configures the diagnostic logger.
	Logging LoggingConfig `yaml:"logging"`

	// FixtureDirs lists directories searched (in order) for named fixture
	// programs passed to cmd/cba without an explicit path.
	FixtureDirs []string `yaml:"fixture_dirs"`

	// LatticePlugins lists paths to additional lattice descriptor files
	// consulted at startup, beyond the built-in registry
	// (internal/lattice's Powerset/GrowingPair/MaxInt/Product2). Reserved
	// for analyses that need a lattice the core doesn't ship; nothing in
	// this repo loads them dynamically today.
	LatticePlugins []string `yaml:"lattice_plugins"`
}

// SolveConfig governs one invocation of solve/solve-lazy.
type SolveConfig struct {
	// DefaultTimeout bounds an unattended solve via context.WithTimeout.
	// Zero means no deadline; cancellation is still honored via Ctrl-C.
	DefaultTimeout time.Duration `yaml:"default_timeout"`

	// StrictConstraintErrors, when false, makes `cba check` aggregate
	// errors from Constraint.Check with multierr and keep checking the
	// remaining constraints instead of aborting on the first one. Solves
	// themselves always stop at the first ConstraintUpdate error.
	StrictConstraintErrors bool `yaml:"strict_constraint_errors"`
}

// LoggingConfig configures internal/logging.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns cmd/cba's out-of-the-box configuration.
func DefaultConfig() *Config {
	return &Config{
		Solve: SolveConfig{
			DefaultTimeout:         30 * time.Second,
			StrictConstraintErrors: true,
		},
		Logging: LoggingConfig{
			Verbose: false,
		},
		FixtureDirs:    []string{"testdata"},
		LatticePlugins: []string{},
	}
}

// Load reads configuration from a YAML file, falling back to defaults if
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes configuration to a YAML file, creating parent directories as
// needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: failed to create %s: %w", dir, err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: failed to marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	return nil
}

// ResolveFixture searches FixtureDirs for a fixture named name with a .yaml
// extension, returning the first match.
func (c *Config) ResolveFixture(name string) (string, error) {
	if filepath.Ext(name) != "" {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	for _, dir := range c.FixtureDirs {
		candidate := filepath.Join(dir, name+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("config: fixture %q not found in %v", name, c.FixtureDirs)
}
