package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cleanstream/internal/compile"
	"cleanstream/internal/rules"
)

func compileOne(t *testing.T, r rules.Rule) *compile.CompiledRuleSet {
	t.Helper()
	ruleset, warnings := compile.NewCompiler().Compile([]rules.Rule{r})
	assert.Empty(t, warnings)
	return ruleset
}

func TestFindMatches_FindsEveryOccurrence(t *testing.T) {
	ruleset := compileOne(t, rules.Rule{Name: "digit_pair", Pattern: `\d\d`, ReplaceWith: "[X]"})
	spans := findMatches([]byte("12 34 56"), ruleset)
	assert.Len(t, spans, 3)
}

func TestApplyValidators_NoValidatorRegisteredApprovesMatch(t *testing.T) {
	ruleset := compileOne(t, rules.Rule{
		Name:                   "made_up_rule",
		Pattern:                `\d{3}`,
		ReplaceWith:            "[X]",
		ProgrammaticValidation: true,
	})
	spans := findMatches([]byte("123"), ruleset)
	kept := applyValidators([]byte("123"), ruleset, spans, nil)
	assert.Len(t, kept, 1)
}

func TestSafeValidate_RecoversFromPanic(t *testing.T) {
	panicky := func(string) bool { panic("boom") }
	ok := safeValidate(panicky, "anything", nil, "panicky_rule")
	assert.False(t, ok)
}

func TestSafeValidate_ReturnsValidatorResult(t *testing.T) {
	always := func(string) bool { return true }
	assert.True(t, safeValidate(always, "x", nil, "r"))

	never := func(string) bool { return false }
	assert.False(t, safeValidate(never, "x", nil, "r"))
}
