// Package engine implements the sanitization pipeline: ANSI stripping,
// per-rule matching, programmatic validation, overlap resolution, and
// capture-group-expanding replacement. It is addressed through the single
// Engine interface so alternative detectors (entropy-based, etc.) can
// stand in for the regex engine while still composing with the same
// resolver/replacer offset contract.
package engine

// RedactionMatch is a single retained detection. Start and End are
// half-open byte offsets into the ANSI-stripped input; Original is always
// equal to that input's [Start:End) slice.
type RedactionMatch struct {
	RuleName  string
	Original  string
	Sanitized string
	Start     int
	End       int
}

// Warner is the injectable logging facility the pipeline reports warnings
// through (spec §7: "the core must not depend on a global logger"). A nil
// Warner is valid and simply discards warnings.
type Warner interface {
	Warn(stage, ruleName, message string)
}

// NopWarner discards every warning.
type NopWarner struct{}

func (NopWarner) Warn(stage, ruleName, message string) {}

func warn(w Warner, stage, ruleName, message string) {
	if w != nil {
		w.Warn(stage, ruleName, message)
	}
}
