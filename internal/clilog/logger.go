// Package clilog provides the console-facing engine.Warner implementation
// for the sanitize CLI, built the same way the teacher CLI builds its
// root-command logger: zap.NewProductionConfig() by default, dropped to
// debug level under --verbose.
package clilog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Warner adapts a *zap.Logger to engine.Warner.
type Warner struct {
	logger *zap.Logger
}

// New builds a Warner. verbose raises the level to debug, matching the
// teacher's PersistentPreRunE logger setup in cmd/nerd/main.go.
func New(verbose bool) (*Warner, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Warner{logger: logger}, nil
}

// Warn implements engine.Warner.
func (w *Warner) Warn(stage, ruleName, message string) {
	w.logger.Warn(message,
		zap.String("stage", stage),
		zap.String("rule", ruleName),
	)
}

// Sync flushes any buffered log entries. Callers should defer it after
// constructing a Warner, mirroring logger.Sync() in the teacher's
// PersistentPostRun.
func (w *Warner) Sync() error {
	return w.logger.Sync()
}
