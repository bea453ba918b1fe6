package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsZeroState(t *testing.T) {
	tr, err := Load(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, tr.Count())
	assert.False(t, tr.PromptsDisabled())
}

func TestIncrementAndFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	tr, err := Load(path)
	require.NoError(t, err)

	tr.Increment()
	tr.Increment()
	require.NoError(t, tr.Flush())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Count())
}

func TestSave_DebouncesWithinMinGap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	tr, err := Load(path)
	require.NoError(t, err)

	now := time.Unix(1_700_000_000, 0)
	tr.Increment()
	require.NoError(t, tr.Save(now))

	tr.Increment()
	require.NoError(t, tr.Save(now.Add(time.Millisecond)))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Count(), "second save should have been debounced")
}

func TestSave_WritesAfterMinGapElapses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	tr, err := Load(path)
	require.NoError(t, err)

	now := time.Unix(1_700_000_000, 0)
	tr.Increment()
	require.NoError(t, tr.Save(now))

	tr.Increment()
	require.NoError(t, tr.Save(now.Add(DefaultSaveDebounce+time.Second)))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Count())
}

func TestRecordPromptAndSuppression(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	tr, err := Load(path)
	require.NoError(t, err)

	now := time.Unix(1_700_000_123, 0)
	tr.RecordPrompt(now)
	tr.SetPromptsDisabled(true)
	require.NoError(t, tr.Flush())

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, reloaded.state.LastPromptUnix)
	assert.Equal(t, now.Unix(), *reloaded.state.LastPromptUnix)
	assert.True(t, reloaded.PromptsDisabled())
}
