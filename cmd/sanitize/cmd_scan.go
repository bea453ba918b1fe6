package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"cleanstream/internal/compile"
	"cleanstream/internal/engine"
	"cleanstream/internal/rules"
)

var (
	scanFailOver int
	scanWatch    bool
)

// scanCmd sanitizes input the same way sanitizeCmd does but discards the
// sanitized output, reporting only the summary and an exit code — the
// collaborator-side exit-code mapping spec.md §6 names but leaves to the
// CLI: the core surfaces a retained-match count, the collaborator maps
// it to a threshold.
var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Report how many sensitive substrings a file or stdin contains, without writing output",
	RunE: func(cmd *cobra.Command, args []string) error {
		ruleset, err := buildRuleSet(activeWarner())
		if err != nil {
			return err
		}

		if scanWatch {
			return runScanWatch(ruleset, args)
		}
		return runScanOnce(ruleset, args)
	},
}

func init() {
	scanCmd.Flags().IntVar(&scanFailOver, "fail-over", -1, "Exit non-zero if the total retained-match count exceeds this threshold (-1 disables the check)")
	scanCmd.Flags().BoolVar(&scanWatch, "watch", false, "Keep running, re-scanning the input file each time --rules-file changes on disk")
}

func runScanOnce(ruleset *compile.CompiledRuleSet, args []string) error {
	in, closeIn, err := openInput(args)
	if err != nil {
		return err
	}
	defer closeIn()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	_, matches := engine.NewRegexEngine(activeWarner()).Sanitize(data, ruleset)
	summary := engine.BuildSummary(matches, engine.DefaultSampleCap)

	recordUsage()
	printSummary(os.Stdout, summary)

	if scanFailOver >= 0 && summary.TotalMatches() > scanFailOver {
		os.Exit(1)
	}
	return nil
}

// runScanWatch re-scans path every time cfg.RulesFile changes on disk,
// recompiling the CompiledRuleSet from the new bytes via buildRuleSet and
// printing a fresh summary, until interrupted. stdin can't be re-read on
// each reload, so --watch requires a real file argument.
func runScanWatch(ruleset *compile.CompiledRuleSet, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("scan --watch requires a file argument, not stdin")
	}
	if cfg.RulesFile == "" {
		return fmt.Errorf("scan --watch requires --rules-file (nothing on disk to watch otherwise)")
	}
	path := args[0]

	rescan := func(rs *compile.CompiledRuleSet) {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "scan --watch: read %q: %v\n", path, err)
			return
		}
		_, matches := engine.NewRegexEngine(activeWarner()).Sanitize(data, rs)
		recordUsage()
		printSummary(os.Stdout, engine.BuildSummary(matches, engine.DefaultSampleCap))
	}

	rescan(ruleset)

	watcher, err := rules.WatchUserRules(cfg.RulesFile, func(doc []byte, err error) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "scan --watch: rules file %q: %v\n", cfg.RulesFile, err)
			return
		}
		rebuilt, buildErr := buildRuleSet(activeWarner())
		if buildErr != nil {
			fmt.Fprintf(os.Stderr, "scan --watch: recompile rules: %v\n", buildErr)
			return
		}
		fmt.Fprintf(os.Stderr, "scan --watch: %s changed, recompiled and re-scanning %s\n", cfg.RulesFile, path)
		rescan(rebuilt)
	})
	if err != nil {
		return fmt.Errorf("watch rules file %q: %w", cfg.RulesFile, err)
	}
	defer watcher.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	<-sigCh
	return nil
}
