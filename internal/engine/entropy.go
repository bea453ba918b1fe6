package engine

import (
	"math"
	"regexp"

	"cleanstream/internal/compile"
)

// EntropyEngine is the alternative, non-regex-ruleset detector anticipated
// by spec §9: it flags high-entropy tokens (the shape of random API keys,
// tokens, and hashes) independently of any rule set, but still returns
// RedactionMatches whose offsets refer to the ANSI-stripped input so the
// same resolver/replacer contract composes for any caller folding its
// output alongside RegexEngine's.
type EntropyEngine struct {
	// MinLength is the shortest token considered (default 20). Tokens
	// shorter than 8 characters are never considered, whatever its value.
	MinLength int
	// Threshold is the minimum Shannon entropy, in bits per character,
	// for a token to be flagged (default 4.0).
	Threshold float64
	// Replacement is substituted for each flagged token (default
	// "[HIGH_ENTROPY_REDACTED]").
	Replacement string
}

var tokenPattern = regexp.MustCompile(`[A-Za-z0-9+/_\-=]{8,}`)

const (
	defaultMinLength   = 20
	defaultThreshold   = 4.0
	defaultReplacement = "[HIGH_ENTROPY_REDACTED]"
	ruleNameHighEntropy = "high_entropy_token"
)

// NewEntropyEngine returns an EntropyEngine with its documented defaults.
func NewEntropyEngine() *EntropyEngine {
	return &EntropyEngine{
		MinLength:   defaultMinLength,
		Threshold:   defaultThreshold,
		Replacement: defaultReplacement,
	}
}

// Sanitize implements Engine. ruleset is accepted for interface
// conformance but ignored: this engine does not consult regex rules at
// all (spec §4.7).
func (e *EntropyEngine) Sanitize(input []byte, ruleset *compile.CompiledRuleSet) (string, []RedactionMatch) {
	stripped := StripANSI(input)

	minLen := e.MinLength
	if minLen <= 0 {
		minLen = defaultMinLength
	}
	threshold := e.Threshold
	if threshold <= 0 {
		threshold = defaultThreshold
	}
	replacement := e.Replacement
	if replacement == "" {
		replacement = defaultReplacement
	}

	out := make([]byte, 0, len(stripped))
	var matches []RedactionMatch
	cursor := 0

	for _, loc := range tokenPattern.FindAllIndex(stripped, -1) {
		start, end := loc[0], loc[1]
		if end-start < minLen {
			continue
		}
		token := stripped[start:end]
		if shannonEntropy(token) < threshold {
			continue
		}

		out = append(out, stripped[cursor:start]...)
		out = append(out, replacement...)
		matches = append(matches, RedactionMatch{
			RuleName:  ruleNameHighEntropy,
			Original:  string(token),
			Sanitized: replacement,
			Start:     start,
			End:       end,
		})
		cursor = end
	}
	out = append(out, stripped[cursor:]...)

	return string(out), matches
}

func shannonEntropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	var counts [256]int
	for _, b := range data {
		counts[b]++
	}
	n := float64(len(data))
	entropy := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		entropy -= p * math.Log2(p)
	}
	return entropy
}
