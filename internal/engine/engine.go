package engine

import "cleanstream/internal/compile"

// Engine is the single-operation boundary every detector implements
// (spec §4.7). Alternative engines need not honor a rule set's regex
// semantics at all, but must still return non-overlapping RedactionMatches
// whose offsets refer to the ANSI-stripped input, so the resolver and
// replacer contracts keep composing for any caller that folds summaries
// across engines.
type Engine interface {
	Sanitize(input []byte, ruleset *compile.CompiledRuleSet) (string, []RedactionMatch)
}

// RegexEngine is the default Engine: ANSI stripping, per-rule regex
// matching, programmatic validation, overlap resolution, and
// capture-group-expanding replacement, in that order (spec §2's pipeline
// diagram).
type RegexEngine struct {
	Warner Warner
}

// NewRegexEngine returns a RegexEngine that reports warnings to w. A nil w
// is valid; warnings are simply discarded.
func NewRegexEngine(w Warner) *RegexEngine {
	return &RegexEngine{Warner: w}
}

// Sanitize implements Engine. It is deterministic: identical input bytes
// and an identical CompiledRuleSet always yield the same output and the
// same ordered match sequence (spec §5, §8 property 2).
func (e *RegexEngine) Sanitize(input []byte, ruleset *compile.CompiledRuleSet) (string, []RedactionMatch) {
	stripped := StripANSI(input)

	spans := findMatches(stripped, ruleset)
	spans = applyValidators(stripped, ruleset, spans, e.Warner)
	retained := resolve(spans)

	output, matches := replace(stripped, ruleset, retained)
	return output, matches
}

// Sanitize is a convenience entry point equivalent to
// NewRegexEngine(nil).Sanitize(input, ruleset) — the library-level
// operation named in spec §6a.
func Sanitize(input []byte, ruleset *compile.CompiledRuleSet) (string, []RedactionMatch) {
	return NewRegexEngine(nil).Sanitize(input, ruleset)
}
