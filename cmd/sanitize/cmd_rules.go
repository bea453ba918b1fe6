package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cleanstream/internal/compile"
	"cleanstream/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate redaction rule documents",
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Load, merge, and compile a rule document without sanitizing anything",
	Long: `validate runs a user rule document through the same
RuleLoader/RuleComposer/RuleCompiler pipeline sanitize uses, reporting
every MalformedDocument, SchemaViolation, and PatternCompilation
diagnostic it would otherwise only surface as a runtime warning. Useful
for linting custom rule files in CI before they are ever merged with the
embedded defaults in a real run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %q: %w", path, err)
		}

		loaded, loadWarnings := rules.Load(data, path)
		for _, w := range loadWarnings {
			fmt.Fprintln(os.Stderr, w)
		}

		defaults, _ := rules.Defaults()
		merged := rules.Merge(defaults, loaded)
		active, composeWarnings := rules.Compose(merged, nil, nil, rules.ActiveSetStrict)
		for _, w := range composeWarnings {
			fmt.Fprintln(os.Stderr, w)
		}

		ruleset, compileWarnings := compile.NewCompiler().Compile(active)
		for _, w := range compileWarnings {
			fmt.Fprintln(os.Stderr, w)
		}

		fmt.Printf("%d rule(s) loaded, %d compiled successfully\n", len(loaded), len(ruleset.Rules))

		if len(loadWarnings)+len(compileWarnings) > 0 {
			os.Exit(1)
		}
		return nil
	},
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the active rule set after merge/compose, without compiling",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, warnings := rules.Defaults()
		for _, w := range warnings {
			fmt.Fprintln(os.Stderr, w)
		}

		var userRules []rules.Rule
		if cfg != nil && cfg.RulesFile != "" {
			data, err := os.ReadFile(cfg.RulesFile)
			if err != nil {
				return fmt.Errorf("read rules file %q: %w", cfg.RulesFile, err)
			}
			loaded, loadWarnings := rules.Load(data, cfg.RulesFile)
			for _, w := range loadWarnings {
				fmt.Fprintln(os.Stderr, w)
			}
			userRules = loaded
		}

		merged := rules.Merge(defaults, userRules)
		selector := rules.ActiveSetDefault
		var enable, disable []string
		if cfg != nil {
			selector = cfg.ActiveSet
			enable, disable = cfg.Enable, cfg.Disable
		}
		active, composeWarnings := rules.Compose(merged, enable, disable, selector)
		for _, w := range composeWarnings {
			fmt.Fprintln(os.Stderr, w)
		}

		for _, r := range active {
			optIn := ""
			if r.OptIn {
				optIn = " (opt-in)"
			}
			fmt.Printf("%-28s %s%s\n", r.Name, r.Description, optIn)
		}
		return nil
	},
}

func init() {
	rulesCmd.AddCommand(rulesValidateCmd, rulesListCmd)
}
