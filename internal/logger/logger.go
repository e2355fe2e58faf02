// Package logger provides the structured zap logger shared by the
// tradekit commands and the backtest engine.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps *zap.Logger so call sites depend on one local type.
type Logger struct {
	*zap.Logger
}

// NewLogger creates a production logger emitting json records to
// stdout at info level.
func NewLogger() (*Logger, error) {
	return newLogger(zapcore.InfoLevel)
}

// NewVerboseLogger creates a logger with the debug level enabled. The
// commands switch to it when the --verbose flag is set, which surfaces
// the engine's per-fill records.
func NewVerboseLogger() (*Logger, error) {
	return newLogger(zapcore.DebugLevel)
}

func newLogger(level zapcore.Level) (*Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(level)

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{Logger: zapLogger}, nil
}

// Sync flushes any buffered log entries. Safe to call on a zero-value
// wrapper.
func (l *Logger) Sync() error {
	if l.Logger != nil {
		return l.Logger.Sync()
	}

	return nil
}
