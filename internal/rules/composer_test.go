package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_UserRuleReplacesSameNamedDefault(t *testing.T) {
	defaults := []Rule{{Name: "email", Pattern: "old"}}
	user := []Rule{{Name: "email", Pattern: "new"}}

	merged := Merge(defaults, user)
	require.Len(t, merged, 1)
	assert.Equal(t, "new", merged[0].Pattern)
}

func TestMerge_UserRuleWithNewNameIsAppended(t *testing.T) {
	defaults := []Rule{{Name: "email"}}
	user := []Rule{{Name: "custom"}}

	merged := Merge(defaults, user)
	require.Len(t, merged, 2)
	assert.Equal(t, "email", merged[0].Name)
	assert.Equal(t, "custom", merged[1].Name)
}

func TestMerge_PreservesDeclarationOrder(t *testing.T) {
	defaults := []Rule{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	user := []Rule{{Name: "b", Pattern: "replaced"}, {Name: "d"}}

	merged := Merge(defaults, user)
	var names []string
	for _, r := range merged {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)
	assert.Equal(t, "replaced", merged[1].Pattern)
}

func TestCompose_NonOptInRulesAlwaysActive(t *testing.T) {
	merged := []Rule{{Name: "email"}}
	active, warnings := Compose(merged, nil, nil, ActiveSetDefault)
	require.Empty(t, warnings)
	assert.Len(t, active, 1)
}

func TestCompose_OptInRuleInactiveByDefault(t *testing.T) {
	merged := []Rule{{Name: "credit_card", OptIn: true}}
	active, _ := Compose(merged, nil, nil, ActiveSetDefault)
	assert.Empty(t, active)
}

func TestCompose_OptInRuleActivatedByEnable(t *testing.T) {
	merged := []Rule{{Name: "credit_card", OptIn: true}}
	active, _ := Compose(merged, []string{"credit_card"}, nil, ActiveSetDefault)
	assert.Len(t, active, 1)
}

func TestCompose_OptInRuleActivatedByStrictSelector(t *testing.T) {
	merged := []Rule{{Name: "credit_card", OptIn: true}}
	active, _ := Compose(merged, nil, nil, ActiveSetStrict)
	assert.Len(t, active, 1)
}

func TestCompose_DisableDominatesEnable(t *testing.T) {
	merged := []Rule{{Name: "email"}}
	active, _ := Compose(merged, []string{"email"}, []string{"email"}, ActiveSetStrict)
	assert.Empty(t, active)
}

func TestCompose_UnknownNameInEnableWarns(t *testing.T) {
	merged := []Rule{{Name: "email"}}
	_, warnings := Compose(merged, []string{"nonexistent"}, nil, ActiveSetDefault)
	require.Len(t, warnings, 1)
	var unknown *UnknownRuleNameError
	assert.ErrorAs(t, warnings[0], &unknown)
	assert.Equal(t, "enable", unknown.List)
}

func TestCompose_UnknownNameInDisableWarns(t *testing.T) {
	merged := []Rule{{Name: "email"}}
	_, warnings := Compose(merged, nil, []string{"nonexistent"}, ActiveSetDefault)
	require.Len(t, warnings, 1)
	assert.Equal(t, "disable", warnings[0].(*UnknownRuleNameError).List)
}
