// Package debug provides debug logging functionality using log/slog backed by zap
package debug

import (
	"log/slog"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

var (
	// logger is the global debug logger instance
	logger = slog.New(zapslog.NewHandler(zapcore.NewNopCore()))
	// sync flushes the zap logger behind logger
	syncFn = func() error { return nil }
	// mu protects logger and syncFn
	mu sync.RWMutex
)

// Init initializes the debug logger
// If enable is true, debug logs will be written to os.Stderr through zap
// If enable is false, debug logs will be silently discarded
func Init(enable bool) {
	mu.Lock()
	defer mu.Unlock()

	if !enable {
		logger = slog.New(zapslog.NewHandler(zapcore.NewNopCore()))
		syncFn = func() error { return nil }
		return
	}

	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zapLogger, err := config.Build()
	if err != nil {
		zapLogger = zap.NewNop()
	}

	logger = slog.New(zapslog.NewHandler(zapLogger.Core()))
	syncFn = zapLogger.Sync
}

// Sync flushes buffered log entries
func Sync() error {
	mu.RLock()
	fn := syncFn
	mu.RUnlock()
	return fn()
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// With returns a logger with the given attributes
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}

// Logger returns the underlying slog.Logger instance
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
