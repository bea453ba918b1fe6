// Package diagnostics is a categorized, file-based warning log: one file
// per pipeline stage under a state directory, each line a JSON record.
// It is adapted from the teacher's internal/logging category-per-file
// design, trimmed to the one thing the sanitization core needs a durable
// trail of — the warnings spec §7 says must never be silently swallowed
// between runs of a long-lived `scan --watch` or CI job.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Category names a log file under the diagnostics directory.
type Category string

const (
	CategoryRules    Category = "rules"
	CategoryCompile  Category = "compile"
	CategoryValidate Category = "validate"
)

// Entry is one JSON-encoded diagnostics line.
type Entry struct {
	Timestamp     time.Time `json:"ts"`
	CorrelationID string    `json:"correlation_id"`
	Stage         string    `json:"stage"`
	RuleName      string    `json:"rule,omitempty"`
	Message       string    `json:"message"`
}

// Log writes diagnostics entries to per-category files under dir.
type Log struct {
	dir   string
	mu    sync.Mutex
	files map[Category]*os.File
}

// Open ensures dir exists and returns a Log writing into it.
func Open(dir string) (*Log, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("diagnostics: create dir %q: %w", dir, err)
	}
	return &Log{dir: dir, files: make(map[Category]*os.File)}, nil
}

// NewCorrelationID returns a fresh correlation ID to stamp every
// diagnostics entry produced by one sanitize/scan invocation, so entries
// from that run can be grepped together across categories.
func NewCorrelationID() string {
	return uuid.New().String()
}

// Record appends one entry to the category's log file.
func (l *Log) Record(correlationID string, category Category, stage, ruleName, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, ok := l.files[category]
	if !ok {
		path := filepath.Join(l.dir, string(category)+".log")
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("diagnostics: open %q: %w", path, err)
		}
		l.files[category] = f
	}

	entry := Entry{
		Timestamp:     time.Now(),
		CorrelationID: correlationID,
		Stage:         stage,
		RuleName:      ruleName,
		Message:       message,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = f.Write(data)
	return err
}

// Close closes every open category file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var firstErr error
	for _, f := range l.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Warner adapts a Log to engine.Warner for one correlation ID, routing
// every stage's warning into the matching category file (falling back to
// CategoryValidate for stages it doesn't recognize).
type Warner struct {
	Log           *Log
	CorrelationID string
}

func (w Warner) Warn(stage, ruleName, message string) {
	category := CategoryValidate
	switch stage {
	case "rules":
		category = CategoryRules
	case "compile":
		category = CategoryCompile
	}
	_ = w.Log.Record(w.CorrelationID, category, stage, ruleName, message)
}
