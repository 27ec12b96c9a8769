// Package log provides the structured logger used throughout ngxconf. It is a
// thin layer over [log/slog] that adds a Trace level, named time layouts, and
// colorized "pretty" handlers for interactive use.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("config loaded", slog.String("file", "nginx.conf"))
//
// # Configuration
//
// Loggers are configured once, at creation, with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a new logger from an existing one, overriding only
// the options given.
//
// # Zero Value
//
// The zero [Logger] discards everything. Library code (such as package conf)
// can therefore accept a Logger by value and log unconditionally; callers
// that never configure one pay only for the level check.
//
// # Package-Level Logger
//
// The package keeps a default logger used by [Info], [Error], and friends.
// [Config] replaces it with one derived from the current default. The CLI
// calls Config while flags are parsed so that errors raised during parsing
// are already rendered in the requested format.
package log
