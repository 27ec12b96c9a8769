// Package cli contains the command line interface for ngxconf.
//
// # Configuration
//
// Flag defaults are read from a configuration file in the user config
// directory (for example ~/.config/ngxconf/config), written in the same
// nginx syntax ngxconf edits:
//
//	log-level debug;
//	log {
//	    format json;
//	    pretty false;
//	}
//	root /usr/local/etc/nginx;
//
// Block names prefix the flags they contain, so the example sets
// --log-level, --log-format, --no-log-pretty and --root. A JSON file of
// the same name with a .json suffix is also consulted. Flags given on the
// command line take precedence. "ngxconf init" writes a file populated with
// the current values.
//
// The nginx configuration root defaults to the first directory holding
// nginx.conf among $NGXCONF_PATH (a list of directories) and the usual
// install locations.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (json, text)
//   - --log-time-layout: timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: include caller information
//   - --[no-]log-pretty: colorized text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o ngxconf .
//
//   - --pprof-mode: profile to record (allocs, block, cpu, heap, ...)
//   - --pprof-dir: output directory (default ~/.cache/ngxconf/pprof)
package cli
