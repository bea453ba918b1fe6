package engine

import "sort"

// DefaultSampleCap is the number of unique original/sanitized samples kept
// per rule when no explicit cap is requested.
const DefaultSampleCap = 5

// RuleSummary aggregates the retained matches for a single rule.
type RuleSummary struct {
	Count            int      `json:"count"`
	OriginalSamples  []string `json:"original_samples"`
	SanitizedSamples []string `json:"sanitized_samples"`
}

// Summary maps rule name to its aggregated RuleSummary. Go's encoding/json
// sorts map[string]* keys lexicographically when marshaling, which gives
// this type the deterministic-by-rule-name serialization spec §4.6
// requires for free; RuleNames below provides the same order for non-JSON
// consumers (text reports, log fields).
type Summary map[string]*RuleSummary

// BuildSummary aggregates a retained match list into a Summary. Samples
// are deduplicated and capped per rule at sampleCap (DefaultSampleCap if
// sampleCap <= 0), preserving first-seen order so repeated runs over the
// same input produce identical sample lists.
func BuildSummary(matches []RedactionMatch, sampleCap int) Summary {
	if sampleCap <= 0 {
		sampleCap = DefaultSampleCap
	}

	summary := make(Summary)
	seenOriginal := make(map[string]map[string]bool)
	seenSanitized := make(map[string]map[string]bool)

	for _, m := range matches {
		rs, ok := summary[m.RuleName]
		if !ok {
			rs = &RuleSummary{}
			summary[m.RuleName] = rs
			seenOriginal[m.RuleName] = make(map[string]bool)
			seenSanitized[m.RuleName] = make(map[string]bool)
		}
		rs.Count++

		if !seenOriginal[m.RuleName][m.Original] {
			seenOriginal[m.RuleName][m.Original] = true
			if len(rs.OriginalSamples) < sampleCap {
				rs.OriginalSamples = append(rs.OriginalSamples, m.Original)
			}
		}
		if !seenSanitized[m.RuleName][m.Sanitized] {
			seenSanitized[m.RuleName][m.Sanitized] = true
			if len(rs.SanitizedSamples) < sampleCap {
				rs.SanitizedSamples = append(rs.SanitizedSamples, m.Sanitized)
			}
		}
	}

	return summary
}

// RuleNames returns the summary's rule names in lexicographic order.
func (s Summary) RuleNames() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TotalMatches sums Count across every rule in the summary — the
// collaborator-facing count that a `scan` exit-code policy consults
// (spec §6).
func (s Summary) TotalMatches() int {
	total := 0
	for _, rs := range s {
		total += rs.Count
	}
	return total
}

// Fold merges other into s in place, summing counts and unioning sample
// sets (each still capped at sampleCap). Used by the line-buffered wrapper
// to reaggregate per-line summaries (spec §9).
func (s Summary) Fold(other Summary, sampleCap int) {
	if sampleCap <= 0 {
		sampleCap = DefaultSampleCap
	}
	for name, rs := range other {
		existing, ok := s[name]
		if !ok {
			existing = &RuleSummary{}
			s[name] = existing
		}
		existing.Count += rs.Count
		existing.OriginalSamples = unionCapped(existing.OriginalSamples, rs.OriginalSamples, sampleCap)
		existing.SanitizedSamples = unionCapped(existing.SanitizedSamples, rs.SanitizedSamples, sampleCap)
	}
}

func unionCapped(a, b []string, limit int) []string {
	seen := make(map[string]bool, len(a))
	out := make([]string, 0, len(a))
	for _, v := range a {
		seen[v] = true
		out = append(out, v)
	}
	for _, v := range b {
		if len(out) >= limit {
			break
		}
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
