package engine

import (
	"fmt"

	"cleanstream/internal/compile"
)

// span is an internal match record carrying enough to both resolve
// overlaps and, later, expand the replacement template.
type span struct {
	ruleIndex  int
	ruleName   string
	start, end int
	submatches []int // as returned by FindAllSubmatchIndex, relative to the stripped input
}

// findMatches runs every compiled rule over stripped in declared order,
// collecting every non-overlapping-per-rule match each rule's own matcher
// finds (spec §4.5: "matchers themselves return non-overlapping matches
// per rule").
func findMatches(stripped []byte, ruleset *compile.CompiledRuleSet) []span {
	var spans []span
	for ri, rule := range ruleset.Rules {
		for _, m := range rule.Matcher.FindAllSubmatchIndex(stripped, -1) {
			spans = append(spans, span{
				ruleIndex:  ri,
				ruleName:   rule.Name,
				start:      m[0],
				end:        m[1],
				submatches: m,
			})
		}
	}
	return spans
}

// applyValidators drops any match whose rule requires programmatic
// validation and whose registered validator rejects the matched text. A
// rule with no registered validator is treated as always-approved (spec
// §4.3); a validator that panics is treated as a rejection plus a warning
// (spec §4.5, "ValidatorFault").
func applyValidators(stripped []byte, ruleset *compile.CompiledRuleSet, spans []span, w Warner) []span {
	kept := make([]span, 0, len(spans))
	for _, s := range spans {
		rule := ruleset.Rules[s.ruleIndex]
		if rule.ProgrammaticValidation && rule.Validator != nil {
			matched := string(stripped[s.start:s.end])
			if !safeValidate(rule.Validator, matched, w, rule.Name) {
				continue
			}
		}
		kept = append(kept, s)
	}
	return kept
}

func safeValidate(fn func(string) bool, matched string, w Warner, ruleName string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			warn(w, "validate", ruleName, fmt.Sprintf("validator panicked: %v", r))
			ok = false
		}
	}()
	return fn(matched)
}
