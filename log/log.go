package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger is an immutable, concurrency-safe structured logger. The zero value
// discards all records.
type Logger struct {
	handler slog.Handler
	config
}

// Make returns a Logger writing to w. Without options it uses
// [DefaultLevel], [DefaultFormat], [DefaultTimeLayout] and [DefaultPretty].
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{handler: cfg.handler(), config: cfg}
}

// Wrap returns a Logger configured like l with opts applied on top. Attributes
// added with [Logger.With] are not carried over.
func (l Logger) Wrap(opts ...Option) Logger {
	if l.handler == nil {
		return Make(nil, opts...)
	}

	cfg := apply(l.config, opts...)

	return Logger{handler: cfg.handler(), config: cfg}
}

// With returns a Logger that adds attrs to every record.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.handler == nil || len(attrs) == 0 {
		return l
	}

	l.handler = l.handler.WithAttrs(attrs)

	return l
}

// WithGroup returns a Logger that qualifies subsequent attributes with name.
func (l Logger) WithGroup(name string) Logger {
	if l.handler == nil || name == "" {
		return l
	}

	l.handler = l.handler.WithGroup(name)

	return l
}

// Handler returns the underlying handler, or [slog.DiscardHandler].
func (l Logger) Handler() slog.Handler {
	if l.handler == nil {
		return slog.DiscardHandler
	}

	return l.handler
}

// Slog returns l as a standard library logger.
func (l Logger) Slog() *slog.Logger { return slog.New(l.Handler()) }

// Level returns the minimum level of records that are written.
func (l Logger) Level() Level {
	if l.handler == nil {
		return DefaultLevel
	}

	return l.level
}

// Format returns the record encoding.
func (l Logger) Format() Format {
	if l.handler == nil {
		return DefaultFormat
	}

	return l.format
}

// Enabled reports whether a record at level would be written.
func (l Logger) Enabled(ctx context.Context, level Level) bool {
	return l.handler != nil && l.handler.Enabled(ctx, slog.Level(level))
}

func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelTrace, msg, attrs)
}

func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelDebug, msg, attrs)
}

func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelInfo, msg, attrs)
}

func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelWarn, msg, attrs)
}

func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelError, msg, attrs)
}

func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelTrace, msg, attrs)
}

func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelDebug, msg, attrs)
}

func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelInfo, msg, attrs)
}

func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelWarn, msg, attrs)
}

func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelError, msg, attrs)
}

// callerSkip skips runtime.Callers, Logger.log, and the exported level method
// or package-level function that called it.
const callerSkip = 3

func (l Logger) log(
	ctx context.Context,
	level Level,
	msg string,
	attrs []slog.Attr,
) {
	if !l.Enabled(ctx, level) {
		return
	}

	var pc uintptr

	if l.caller {
		var pcs [1]uintptr

		runtime.Callers(callerSkip, pcs[:])
		pc = pcs[0]
	}

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pc)
	r.AddAttrs(attrs...)

	_ = l.handler.Handle(ctx, r)
}
