package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

var defaultLogger atomic.Pointer[Logger]

func init() {
	l := Make(os.Stderr)
	defaultLogger.Store(&l)
}

// Default returns the package-level logger.
func Default() Logger { return *defaultLogger.Load() }

// SetDefault replaces the package-level logger.
func SetDefault(l Logger) { defaultLogger.Store(&l) }

// Config derives a new package-level logger from the current one with opts
// applied, installs it, and returns it.
func Config(opts ...Option) Logger {
	l := Default().Wrap(opts...)
	SetDefault(l)

	return l
}

// With returns the package-level logger with attrs added.
func With(attrs ...slog.Attr) Logger { return Default().With(attrs...) }

func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().log(ctx, LevelTrace, msg, attrs)
}

func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().log(ctx, LevelDebug, msg, attrs)
}

func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().log(ctx, LevelInfo, msg, attrs)
}

func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().log(ctx, LevelWarn, msg, attrs)
}

func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().log(ctx, LevelError, msg, attrs)
}

func Trace(msg string, attrs ...slog.Attr) {
	Default().log(context.Background(), LevelTrace, msg, attrs)
}

func Debug(msg string, attrs ...slog.Attr) {
	Default().log(context.Background(), LevelDebug, msg, attrs)
}

func Info(msg string, attrs ...slog.Attr) {
	Default().log(context.Background(), LevelInfo, msg, attrs)
}

func Warn(msg string, attrs ...slog.Attr) {
	Default().log(context.Background(), LevelWarn, msg, attrs)
}

func Error(msg string, attrs ...slog.Attr) {
	Default().log(context.Background(), LevelError, msg, attrs)
}
