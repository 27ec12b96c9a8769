package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}
	if logger.Format() != FormatText {
		t.Errorf("expected default format text, got %v", logger.Format())
	}
	if logger.caller {
		t.Error("expected caller disabled by default")
	}
	if !logger.pretty {
		t.Error("expected pretty enabled by default")
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelDebug))

	logger.Debug("debug message")
	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug message not logged at debug level")
	}

	buf.Reset()
	logger = Make(&buf, WithLevel(LevelError))

	logger.Info("info message")
	if buf.Len() > 0 {
		t.Errorf("info message logged at error level: %q", buf.String())
	}

	logger.Error("error message")
	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at error level")
	}
}

func TestLogger_Trace_RendersName(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf,
		WithLevel(LevelTrace),
		WithPretty(false),
		WithTimeLayout("none"))

	logger.Trace("tokens", slog.Int("count", 3))

	got := buf.String()
	if !strings.Contains(got, "level=TRACE") {
		t.Errorf("expected level=TRACE, got %q", got)
	}
	if strings.Contains(got, "time=") {
		t.Errorf("expected no timestamp, got %q", got)
	}
}

func TestLogger_JSON_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelDebug))

	logger.Debug("parsed", slog.String("file", "nginx.conf"), slog.Int("nodes", 12))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}

	for key, want := range map[string]any{
		"level": "DEBUG",
		"msg":   "parsed",
		"file":  "nginx.conf",
		"nodes": float64(12),
	} {
		if rec[key] != want {
			t.Errorf("%s = %v, want %v", key, rec[key], want)
		}
	}

	if _, ok := rec["time"]; !ok {
		t.Error("expected a time field")
	}
}

func TestLogger_WithTimeLayout(t *testing.T) {
	stamp := time.Date(2024, 3, 9, 15, 4, 5, 123456789, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"", ""},
		{"none", ""},
		{"RFC3339", "2024-03-09T15:04:05Z"},
		{"rfc-3339-nano", "2024-03-09T15:04:05.123456789Z"},
		{"Kitchen", "3:04PM"},
		{"ms", "Mar  9 15:04:05.123"},
		{"DateOnly", "2024-03-09"},
		{"2006/01/02", "2024/03/09"},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := makeFormatTimeFunc(tt.layout)(stamp); got != tt.want {
				t.Errorf("layout %q: got %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}

func TestLogger_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithCaller(true), WithPretty(false))

	logger.Info("here")

	if !strings.Contains(buf.String(), "log_test.go:") {
		t.Errorf("expected call site in output, got %q", buf.String())
	}
}

func TestLogger_Pretty_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithCaller(true))

	logger.Warn("here")

	if !strings.Contains(buf.String(), "(log_test.go:") {
		t.Errorf("expected call site in output, got %q", buf.String())
	}
}

func TestLogger_Pretty_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithTimeLayout("none")).
		With(slog.String("file", "a.conf")).
		WithGroup("parse")

	logger.Error("failed",
		slog.Int("line", 4),
		slog.Group("token", slog.String("kind", "}")),
		slog.Any("err", errors.New("boom")))

	got := buf.String()
	for _, want := range []string{
		"ERROR",
		"failed",
		"file=a.conf",
		"parse.line=4",
		"parse.token.kind=}",
		"parse.err=boom",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}

	if strings.Count(got, "\n") != 1 {
		t.Errorf("expected a single line, got %q", got)
	}
}

func TestLogger_Wrap_OverridesOnly(t *testing.T) {
	var buf bytes.Buffer
	base := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelWarn))

	wrapped := base.Wrap(WithLevel(LevelDebug))

	if wrapped.Format() != FormatJSON {
		t.Errorf("format changed by Wrap: %v", wrapped.Format())
	}
	if wrapped.Level() != LevelDebug {
		t.Errorf("level not overridden: %v", wrapped.Level())
	}
	if base.Level() != LevelWarn {
		t.Errorf("base logger modified: %v", base.Level())
	}
}

func TestLogger_ZeroValue_Discards(t *testing.T) {
	var logger Logger

	logger.Info("nothing")
	logger.With(slog.String("k", "v")).ErrorContext(context.Background(), "nothing")

	if logger.Enabled(context.Background(), LevelError) {
		t.Error("zero logger reports enabled")
	}
	if logger.Level() != DefaultLevel {
		t.Errorf("zero logger level %v", logger.Level())
	}
	if logger.Handler() != slog.DiscardHandler {
		t.Error("zero logger handler is not the discard handler")
	}
}

func TestLogger_ConcurrentCalls(t *testing.T) {
	var buf syncBuffer
	logger := Make(&buf, WithPretty(false))

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			logger.With(slog.Int("worker", i)).Info("tick")
		}()
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 16 {
		t.Errorf("expected 16 lines, got %d", n)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"trace":   LevelTrace,
		"TRACE":   LevelTrace,
		"debug":   LevelDebug,
		" Info ":  LevelInfo,
		"warn":    LevelWarn,
		"error":   LevelError,
		"bogus":   DefaultLevel,
		"info+2":  Level(2),
		"":        DefaultLevel,
		"ERROR-4": LevelWarn,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("JSON") != FormatJSON {
		t.Error("JSON not parsed")
	}
	if ParseFormat("text") != FormatText {
		t.Error("text not parsed")
	}
	if ParseFormat("yaml") != DefaultFormat {
		t.Error("unknown format did not yield default")
	}
}

func TestLevels_Formats_Enumerate(t *testing.T) {
	if got := slices.Collect(Levels()); !slices.Equal(got,
		[]string{"trace", "debug", "info", "warn", "error"}) {
		t.Errorf("Levels() = %v", got)
	}
	if got := slices.Collect(Formats()); !slices.Equal(got, []string{"text", "json"}) {
		t.Errorf("Formats() = %v", got)
	}
	if s := Level(3).String(); s != "Level(3)" {
		t.Errorf("unnamed level = %q", s)
	}
}

func TestPackage_Config_ReplacesDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	var buf bytes.Buffer
	Config(WithOutput(&buf), WithPretty(false), WithLevel(LevelDebug))

	Debug("from package", slog.Bool("ok", true))
	InfoContext(context.Background(), "with context")

	got := buf.String()
	if !strings.Contains(got, "from package") || !strings.Contains(got, "ok=true") {
		t.Errorf("package logger output %q", got)
	}
	if !strings.Contains(got, "with context") {
		t.Errorf("context variant not logged: %q", got)
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}
