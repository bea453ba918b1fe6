// Package config loads the CLI's external-collaborator configuration —
// which rule files to load, which active set to run, where the state
// file lives. It is adapted from the teacher's internal/config package:
// a defaulted struct, a YAML loader, and a handful of environment
// variable overrides in place of the teacher's ANTHROPIC_API_KEY-style
// env lookups. The sanitization core never imports this package.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"cleanstream/internal/rules"
)

const (
	envStateDir  = "CLEANSTREAM_STATE_DIR"
	envRulesFile = "CLEANSTREAM_RULES_FILE"
	envActiveSet = "CLEANSTREAM_ACTIVE_SET"

	defaultConfigDirName = "cleanstream"
	defaultStateFileName = "state.json"
)

// Config governs the CLI collaborator layer only: which user rule file
// to merge with the embedded defaults, which active set selector to
// apply, and where the usage-state file lives.
type Config struct {
	// RulesFile is an optional path to a user rule document, merged over
	// the embedded defaults by internal/rules.Merge. Empty means
	// defaults only.
	RulesFile string `yaml:"rules_file"`

	// ActiveSet selects which opt-in tier runs: "default" or "strict".
	ActiveSet rules.ActiveSet `yaml:"active_set"`

	// Enable and Disable name individual rules to force on or off,
	// layered after ActiveSet selection (spec.md §4's RuleComposer).
	Enable  []string `yaml:"enable"`
	Disable []string `yaml:"disable"`

	// StateDir is the directory holding the usage-counter/donation-
	// prompt state file. Empty means DefaultStateDir().
	StateDir string `yaml:"state_dir"`

	// Verbose raises the console logger to debug level.
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the zero-configuration defaults: embedded rules
// only, the default active set, no forced enable/disable, and the
// platform's default state directory.
func DefaultConfig() *Config {
	return &Config{
		ActiveSet: rules.ActiveSetDefault,
	}
}

// Load reads a YAML config document from path, falling back to
// DefaultConfig() values for any field the document omits, then applies
// environment-variable overrides. A missing file at path is not an
// error: Load returns defaults with env overrides applied.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if decodeErr := yaml.Unmarshal(data, cfg); decodeErr != nil {
				return nil, fmt.Errorf("config: parse %q: %w", path, decodeErr)
			}
		case os.IsNotExist(err):
			// No config file is a valid, defaulted state.
		default:
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envStateDir); v != "" {
		cfg.StateDir = v
	}
	if v := os.Getenv(envRulesFile); v != "" {
		cfg.RulesFile = v
	}
	if v := os.Getenv(envActiveSet); v != "" {
		cfg.ActiveSet = rules.ActiveSet(v)
	}
}

// ResolvedStateDir returns cfg.StateDir if set, otherwise the platform
// default state directory, creating neither.
func (cfg *Config) ResolvedStateDir() (string, error) {
	if cfg.StateDir != "" {
		return cfg.StateDir, nil
	}
	return DefaultStateDir()
}

// StateFilePath returns the full path to the usage-state JSON file under
// the resolved state directory.
func (cfg *Config) StateFilePath() (string, error) {
	dir, err := cfg.ResolvedStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultStateFileName), nil
}

// DefaultStateDir resolves the user's configuration directory the same
// way the teacher's config package does — via go-homedir rather than
// os.UserHomeDir, so it keeps working under cross-compiled and
// odd-environment scenarios the teacher's deployment targets hit.
func DefaultStateDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", defaultConfigDirName), nil
}
