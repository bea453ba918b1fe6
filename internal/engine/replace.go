package engine

import "cleanstream/internal/compile"

// replace walks retained spans in ascending start order, emitting the
// untouched run before each match, then its expanded replacement. Capture
// group expansion reuses the compiled matcher's own ExpandString so
// $0..$n semantics never drift from the regexp package's own rules (spec
// §9 design note).
func replace(stripped []byte, ruleset *compile.CompiledRuleSet, retained []span) (string, []RedactionMatch) {
	out := make([]byte, 0, len(stripped))
	matches := make([]RedactionMatch, 0, len(retained))

	cursor := 0
	for _, s := range retained {
		out = append(out, stripped[cursor:s.start]...)

		rule := ruleset.Rules[s.ruleIndex]
		expanded := rule.Matcher.ExpandString(nil, rule.ReplaceWith, stripped, s.submatches)
		out = append(out, expanded...)

		matches = append(matches, RedactionMatch{
			RuleName:  rule.Name,
			Original:  string(stripped[s.start:s.end]),
			Sanitized: string(expanded),
			Start:     s.start,
			End:       s.end,
		})

		cursor = s.end
	}
	out = append(out, stripped[cursor:]...)

	return string(out), matches
}
