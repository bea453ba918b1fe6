// Package state persists the usage-counter/donation-prompt file spec.md
// §6 describes as owned by external collaborators, never the core. It is
// adapted from the teacher's internal/usage/usage_tracker.go: a
// mutex-guarded struct, a debounced JSON save, and tolerance for a
// missing file on first run.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// State is the schema spec.md §6 names verbatim: a non-negative usage
// counter, a nullable last-prompt timestamp, and a suppression flag.
type State struct {
	Count           int    `json:"count"`
	LastPromptUnix  *int64 `json:"last_prompt_unix"`
	PromptsDisabled bool   `json:"prompts_disabled"`
}

// Tracker guards a State behind a mutex and debounces writes to disk,
// mirroring the teacher's usageTracker save-coalescing behavior.
type Tracker struct {
	mu       sync.Mutex
	path     string
	state    State
	dirty    bool
	minGap   time.Duration
	lastSave time.Time
}

// DefaultSaveDebounce matches the teacher's usage tracker debounce
// interval: callers incrementing the counter on every sanitize call
// don't hit disk on every single call.
const DefaultSaveDebounce = 2 * time.Second

// Load reads the state file at path. A missing file is not an error: it
// yields a zero-valued State ready for first use, matching spec.md's
// "the core is oblivious to this file" and the teacher's tolerant
// Load() behavior for a fresh install.
func Load(path string) (*Tracker, error) {
	t := &Tracker{path: path, minGap: DefaultSaveDebounce}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(data, &t.state); jsonErr != nil {
			return nil, jsonErr
		}
	case os.IsNotExist(err):
		// Fresh install: zero-valued state, nothing to unmarshal.
	default:
		return nil, err
	}

	return t, nil
}

// Count returns the current usage count.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Count
}

// PromptsDisabled reports whether the user has suppressed donation
// prompts.
func (t *Tracker) PromptsDisabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.PromptsDisabled
}

// Increment bumps the usage counter by one and marks the state dirty.
// It does not itself write to disk — call Flush, or rely on Save's
// debounce.
func (t *Tracker) Increment() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Count++
	t.dirty = true
}

// RecordPrompt stamps the last-prompt timestamp with now and marks the
// state dirty.
func (t *Tracker) RecordPrompt(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	unix := now.Unix()
	t.state.LastPromptUnix = &unix
	t.dirty = true
}

// SetPromptsDisabled sets the suppression flag and marks the state
// dirty.
func (t *Tracker) SetPromptsDisabled(disabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.PromptsDisabled = disabled
	t.dirty = true
}

// Save writes the state to disk if it is dirty and at least minGap has
// elapsed since the last write, debouncing bursts of Increment calls the
// way the teacher's usage tracker coalesces saves. now is supplied by
// the caller rather than taken from time.Now() so callers can control
// debounce behavior in tests.
func (t *Tracker) Save(now time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.dirty {
		return nil
	}
	if !t.lastSave.IsZero() && now.Sub(t.lastSave) < t.minGap {
		return nil
	}
	return t.writeLocked(now)
}

// Flush writes the state to disk if it is dirty, ignoring the debounce
// window. Callers should call this before process exit.
func (t *Tracker) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.dirty {
		return nil
	}
	return t.writeLocked(time.Now())
}

func (t *Tracker) writeLocked(now time.Time) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(t.state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(t.path, data, 0o644); err != nil {
		return err
	}
	t.dirty = false
	t.lastSave = now
	return nil
}
