// Package main implements the sanitize CLI — the thin collaborator shell
// around the cleanstream core: CLI argument parsing and subcommand
// dispatch, file I/O, usage-state persistence, and console logging. None
// of that lives in the core (spec.md §1's explicit non-goals); this
// package is where it lives instead, built the way the teacher CLI is
// built: a cobra root command with persistent flags, a PersistentPreRunE
// that stands up a zap logger, and a PersistentPostRun that tears it
// down.
//
// # File Index
//
//   - main.go          - entry point, rootCmd, global flags, ruleset wiring
//   - cmd_sanitize.go  - `sanitize` subcommand
//   - cmd_scan.go      - `scan` subcommand, --fail-over exit-code mapping
//   - cmd_rules.go     - `rules validate` / `rules list` subcommands
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"cleanstream/internal/clilog"
	"cleanstream/internal/compile"
	"cleanstream/internal/config"
	"cleanstream/internal/diagnostics"
	"cleanstream/internal/engine"
	"cleanstream/internal/rules"
	"cleanstream/internal/state"
)

var (
	// Persistent flags
	configPath   string
	rulesFile    string
	activeSet    string
	enableRules  []string
	disableRules []string
	stateDir     string
	verbose      bool

	// Wired up in PersistentPreRunE, torn down in PersistentPostRun.
	cfg           *config.Config
	warner        *clilog.Warner
	diagLog       *diagnostics.Log
	correlationID string
	tracker       *state.Tracker
)

var rootCmd = &cobra.Command{
	Use:   "sanitize",
	Short: "Detect and redact sensitive substrings in text streams",
	Long: `sanitize applies a declarative set of redaction rules to arbitrary
text — logs, terminal output, files — replacing sensitive substrings
(credentials, personal identifiers, filesystem paths) with stable
placeholder tokens.

It runs entirely locally: no network calls, no persistent state beyond
an optional usage-counter file under the user's configuration directory.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if rulesFile != "" {
			loaded.RulesFile = rulesFile
		}
		if activeSet != "" {
			loaded.ActiveSet = rules.ActiveSet(activeSet)
		}
		if stateDir != "" {
			loaded.StateDir = stateDir
		}
		if verbose {
			loaded.Verbose = true
		}
		loaded.Enable = append(loaded.Enable, enableRules...)
		loaded.Disable = append(loaded.Disable, disableRules...)
		cfg = loaded

		w, err := clilog.New(cfg.Verbose)
		if err != nil {
			return fmt.Errorf("initialize console logger: %w", err)
		}
		warner = w

		dir, err := cfg.ResolvedStateDir()
		if err != nil {
			return fmt.Errorf("resolve state directory: %w", err)
		}
		diagDir, err := diagnostics.Open(dir)
		if err != nil {
			// Diagnostics are a convenience trail, not load-bearing: warn
			// and continue without them rather than fail the whole run.
			fmt.Fprintf(os.Stderr, "warning: diagnostics log unavailable: %v\n", err)
		} else {
			diagLog = diagDir
			correlationID = diagnostics.NewCorrelationID()
		}

		statePath, err := cfg.StateFilePath()
		if err != nil {
			return fmt.Errorf("resolve state file path: %w", err)
		}
		tr, err := state.Load(statePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: usage state unavailable: %v\n", err)
		} else {
			tracker = tr
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if warner != nil {
			_ = warner.Sync()
		}
		if diagLog != nil {
			_ = diagLog.Close()
		}
		if tracker != nil {
			_ = tracker.Flush()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules-file", "", "Path to a user rule document, merged over the embedded defaults")
	rootCmd.PersistentFlags().StringVar(&activeSet, "active-set", "", `Active set selector: "default" or "strict"`)
	rootCmd.PersistentFlags().StringSliceVar(&enableRules, "enable", nil, "Force-enable a rule by name (repeatable)")
	rootCmd.PersistentFlags().StringSliceVar(&disableRules, "disable", nil, "Force-disable a rule by name (repeatable)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "Override the usage-state directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug-level console logging")

	rootCmd.AddCommand(sanitizeCmd, scanCmd, rulesCmd)
}

// fanoutWarner reports every warning to both the console logger and the
// durable diagnostics log, so a single Warner suffices for both the
// ruleset-build stages and the engine's own Sanitize-time validate-stage
// warnings.
type fanoutWarner struct{}

func (fanoutWarner) Warn(stage, ruleName, message string) {
	if warner != nil {
		warner.Warn(stage, ruleName, message)
	}
	if diagLog != nil {
		_ = diagLog.Record(correlationID, diagnostics.Category(stage), stage, ruleName, message)
	}
}

// activeWarner returns the Warner commands should pass to buildRuleSet
// and the engine, fanning warnings out to console and diagnostics alike.
func activeWarner() engine.Warner {
	return fanoutWarner{}
}

// buildRuleSet loads defaults, merges in an optional user rule file,
// composes the active rule list from enable/disable/active-set, and
// compiles the result, reporting every stage's warnings through w. This
// is the CLI-layer equivalent of the engine API's
// compile(default_rules, user_rules?, enable, disable, active_set) entry
// point described in spec.md §6a.
func buildRuleSet(w engine.Warner) (*compile.CompiledRuleSet, error) {
	defaults, warnings := rules.Defaults()
	reportWarnings(w, "rules", warnings)

	var userRules []rules.Rule
	if cfg.RulesFile != "" {
		data, err := os.ReadFile(cfg.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("read rules file %q: %w", cfg.RulesFile, err)
		}
		loaded, loadWarnings := rules.Load(data, cfg.RulesFile)
		reportWarnings(w, "rules", loadWarnings)
		userRules = loaded
	}

	merged := rules.Merge(defaults, userRules)
	active, composeWarnings := rules.Compose(merged, cfg.Enable, cfg.Disable, cfg.ActiveSet)
	reportWarnings(w, "rules", composeWarnings)

	compiler := compile.NewCompiler()
	ruleset, compileWarnings := compiler.Compile(active)
	reportWarnings(w, "compile", compileWarnings)

	return ruleset, nil
}

func reportWarnings(w engine.Warner, stage string, warnings []error) {
	for _, err := range warnings {
		if w != nil {
			w.Warn(stage, "", err.Error())
		}
	}
}

// recordUsage bumps and debounce-saves the usage-state counter, tolerant
// of a tracker that failed to load (spec.md §6: the core and its CLI
// collaborators must not fail a sanitize run over state-file problems).
func recordUsage() {
	if tracker == nil {
		return
	}
	tracker.Increment()
	_ = tracker.Save(time.Now())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
