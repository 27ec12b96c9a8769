package log

//go:generate go tool stringer --linecomment --type Level,Format --output level_string.go

import (
	"iter"
	"log/slog"
	"strings"
)

// Level is the severity of a log record.
type Level slog.Level

const levelTraceOffset = -8

const (
	LevelTrace Level = Level(levelTraceOffset) // trace
	LevelDebug Level = Level(slog.LevelDebug)  // debug
	LevelInfo  Level = Level(slog.LevelInfo)   // info
	LevelWarn  Level = Level(slog.LevelWarn)   // warn
	LevelError Level = Level(slog.LevelError)  // error
)

// DefaultLevel is the level used when none is configured.
const DefaultLevel = LevelInfo

// Levels returns the names of all defined levels, lowest first.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, level := range []Level{
			LevelTrace,
			LevelDebug,
			LevelInfo,
			LevelWarn,
			LevelError,
		} {
			if !yield(level.String()) {
				return
			}
		}
	}
}

// ParseLevel returns the level named by s. Names are case-insensitive and
// may carry a "+N"/"-N" offset as accepted by [slog.Level.UnmarshalText].
// Unrecognized names yield [DefaultLevel].
func ParseLevel(s string) Level {
	if strings.EqualFold(strings.TrimSpace(s), "trace") {
		return LevelTrace
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format selects the record encoding.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is the format used when none is configured.
const DefaultFormat = FormatText

// Formats returns the names of all defined formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, format := range []Format{FormatText, FormatJSON} {
			if !yield(format.String()) {
				return
			}
		}
	}
}

// ParseFormat returns the format named by s, or [DefaultFormat].
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return DefaultFormat
	}
}
