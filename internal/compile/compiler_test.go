package compile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanstream/internal/rules"
)

func TestCompile_ValidPatternCompiles(t *testing.T) {
	ruleset, warnings := NewCompiler().Compile([]rules.Rule{
		{Name: "email", Pattern: `[a-z]+@[a-z]+`, ReplaceWith: "[EMAIL]"},
	})
	require.Empty(t, warnings)
	require.Len(t, ruleset.Rules, 1)
	assert.Equal(t, "email", ruleset.Rules[0].Name)
}

func TestCompile_InvalidPatternIsSkippedNotFatal(t *testing.T) {
	ruleset, warnings := NewCompiler().Compile([]rules.Rule{
		{Name: "broken", Pattern: `(unclosed`, ReplaceWith: "[X]"},
		{Name: "good", Pattern: `ok`, ReplaceWith: "[X]"},
	})
	require.Len(t, warnings, 1)
	require.Len(t, ruleset.Rules, 1)
	assert.Equal(t, "good", ruleset.Rules[0].Name)

	var compErr *PatternCompilationError
	require.ErrorAs(t, warnings[0], &compErr)
	assert.Equal(t, "broken", compErr.Name)
}

func TestCompile_RejectsPatternMatchingEmptyString(t *testing.T) {
	_, warnings := NewCompiler().Compile([]rules.Rule{
		{Name: "empty_matcher", Pattern: `a*`, ReplaceWith: "[X]"},
	})
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Error(), "empty substring")
}

func TestCompile_EnforcesMaxProgramSize(t *testing.T) {
	c := &Compiler{MaxProgramSize: 1}
	_, warnings := c.Compile([]rules.Rule{
		{Name: "too_big", Pattern: `[a-z]{3}[0-9]{3}`, ReplaceWith: "[X]"},
	})
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Error(), "exceeds cap")
}

func TestCompile_InlineFlagsMultilineAndDotAll(t *testing.T) {
	ruleset, warnings := NewCompiler().Compile([]rules.Rule{
		{Name: "block", Pattern: `START.*?END`, ReplaceWith: "[X]", Multiline: true, DotMatchesNewLine: true},
	})
	require.Empty(t, warnings)
	require.Len(t, ruleset.Rules, 1)

	loc := ruleset.Rules[0].Matcher.FindStringIndex("START\nmiddle\nEND")
	require.NotNil(t, loc)
}

func TestCompile_ResolvesValidatorForProgrammaticRule(t *testing.T) {
	ruleset, warnings := NewCompiler().Compile([]rules.Rule{
		{Name: "us_ssn", Pattern: `\d{3}-\d{2}-\d{4}`, ReplaceWith: "[X]", ProgrammaticValidation: true},
	})
	require.Empty(t, warnings)
	require.NotNil(t, ruleset.Rules[0].Validator)
}

func TestCompile_MissingValidatorLeavesNilNotFatal(t *testing.T) {
	ruleset, warnings := NewCompiler().Compile([]rules.Rule{
		{Name: "no_such_validator", Pattern: `x`, ReplaceWith: "[X]", ProgrammaticValidation: true},
	})
	require.Empty(t, warnings)
	assert.Nil(t, ruleset.Rules[0].Validator)
}

func TestPatternCompilationError_Unwrap(t *testing.T) {
	inner := assertError("boom")
	err := &PatternCompilationError{Name: "r", Err: inner}
	assert.Equal(t, inner, err.Unwrap())
	assert.True(t, strings.Contains(err.Error(), "r"))
}

type assertError string

func (e assertError) Error() string { return string(e) }
