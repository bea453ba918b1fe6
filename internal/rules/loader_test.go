package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidDocument(t *testing.T) {
	doc := []byte(`
rules:
  - name: email
    pattern: '[a-z]+@[a-z]+'
    replace_with: '[EMAIL]'
  - name: opt_rule
    pattern: 'x'
    replace_with: '[X]'
    opt_in: true
`)
	loaded, warnings := Load(doc, "test.yaml")
	require.Empty(t, warnings)
	require.Len(t, loaded, 2)
	assert.Equal(t, "email", loaded[0].Name)
	assert.True(t, loaded[1].OptIn)
	assert.Equal(t, "test.yaml", loaded[0].Source)
}

func TestLoad_MalformedYAMLReturnsNoRules(t *testing.T) {
	doc := []byte("rules: [this is not valid: yaml: at all")
	loaded, warnings := Load(doc, "bad.yaml")
	assert.Nil(t, loaded)
	require.Len(t, warnings, 1)
	var malformed *MalformedDocumentError
	assert.ErrorAs(t, warnings[0], &malformed)
}

func TestLoad_MissingNameIsSkippedWithWarning(t *testing.T) {
	doc := []byte(`
rules:
  - pattern: 'x'
    replace_with: '[X]'
  - name: valid_rule
    pattern: 'y'
    replace_with: '[Y]'
`)
	loaded, warnings := Load(doc, "test.yaml")
	require.Len(t, loaded, 1)
	assert.Equal(t, "valid_rule", loaded[0].Name)
	require.Len(t, warnings, 1)
	var schema *SchemaViolationError
	assert.ErrorAs(t, warnings[0], &schema)
}

func TestLoad_MissingPatternIsSkipped(t *testing.T) {
	doc := []byte(`
rules:
  - name: no_pattern
    replace_with: '[X]'
`)
	loaded, warnings := Load(doc, "test.yaml")
	assert.Empty(t, loaded)
	require.Len(t, warnings, 1)
}

func TestLoad_MissingReplaceWithIsSkipped(t *testing.T) {
	doc := []byte(`
rules:
  - name: no_replacement
    pattern: 'x'
`)
	loaded, warnings := Load(doc, "test.yaml")
	assert.Empty(t, loaded)
	require.Len(t, warnings, 1)
}

func TestLoad_DuplicateNameWithinDocumentIsSkipped(t *testing.T) {
	doc := []byte(`
rules:
  - name: dup
    pattern: 'a'
    replace_with: '[A]'
  - name: dup
    pattern: 'b'
    replace_with: '[B]'
`)
	loaded, warnings := Load(doc, "test.yaml")
	require.Len(t, loaded, 1)
	assert.Equal(t, "a", loaded[0].Pattern)
	require.Len(t, warnings, 1)
}

func TestDefaults_LoadsEmbeddedDocumentCleanly(t *testing.T) {
	loaded, warnings := Defaults()
	require.Empty(t, warnings)
	assert.NotEmpty(t, loaded)

	names := make(map[string]bool, len(loaded))
	for _, r := range loaded {
		assert.False(t, names[r.Name], "duplicate default rule name %q", r.Name)
		names[r.Name] = true
		assert.Equal(t, DefaultSource, r.Source)
	}
	assert.Contains(t, names, "email")
	assert.Contains(t, names, "us_ssn")
}
