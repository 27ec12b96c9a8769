// Package cmd implements the ngxconf subcommands: formatting, path queries,
// in-place edits, filter search, site management and the interactive
// explorer.
//
// Commands read a configuration from a file argument or "-" for stdin and
// print to the writer stored with [WithOutput] (stdout by default). Editing
// commands print the result unless --write or --apply is given.
package cmd

var (
	// CacheIdentifier is the kong variable holding the runtime cache
	// directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable holding the path of the
	// configuration file.
	ConfigIdentifier = "config"

	// RootIdentifier is the kong variable holding the default nginx
	// configuration root.
	RootIdentifier = "root"
)
