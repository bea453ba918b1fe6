package engine

import "sort"

// resolve reduces overlapping spans to a non-overlapping, deterministically
// ordered sequence (spec §4.5). Spans are sorted by start ascending, then
// by end descending (a longer match wins ties at the same start), then by
// rule declaration order; a span is retained if its start is at or past
// the previously retained span's end.
func resolve(spans []span) []span {
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		if spans[i].end != spans[j].end {
			return spans[i].end > spans[j].end
		}
		return spans[i].ruleIndex < spans[j].ruleIndex
	})

	retained := make([]span, 0, len(spans))
	lastEnd := 0
	for _, s := range spans {
		if s.start >= lastEnd {
			retained = append(retained, s)
			lastEnd = s.end
		}
	}
	return retained
}
