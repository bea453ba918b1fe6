package engine

import (
	"bufio"
	"io"
	"strings"

	"cleanstream/internal/compile"
)

// StreamResult is the reaggregated outcome of sanitizing a reader
// line-by-line.
type StreamResult struct {
	Output  string
	Summary Summary
}

// SanitizeStream implements the external line-buffered wrapper described
// in spec §9 ("Streaming versus batch"): it is not part of the core, but
// every line still goes through the same batch Sanitize operation, one
// line at a time, with summaries folded across lines. Input is read one
// line at a time, but the sanitized output is accumulated in memory in
// full and returned as StreamResult.Output. A match that spans a line
// boundary is never detected.
func SanitizeStream(r io.Reader, eng Engine, ruleset *compile.CompiledRuleSet, sampleCap int) (*StreamResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out strings.Builder
	folded := make(Summary)
	first := true

	for scanner.Scan() {
		if !first {
			out.WriteByte('\n')
		}
		first = false

		line := scanner.Bytes()
		sanitizedLine, matches := eng.Sanitize(line, ruleset)
		out.WriteString(sanitizedLine)

		lineSummary := BuildSummary(matches, sampleCap)
		folded.Fold(lineSummary, sampleCap)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &StreamResult{Output: out.String(), Summary: folded}, nil
}
