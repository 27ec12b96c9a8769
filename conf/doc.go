// Package conf reads, queries, edits and writes block-structured
// configuration files in the nginx style:
//
//	# comment
//	worker_processes 4;
//	http {
//	    server {
//	        listen 443 ssl;
//	        server_name "example.com www.example.com";
//	    }
//	}
//
// A file is a sequence of statements. A statement is either a comment, or a
// directive: a name, zero or more arguments, and then ';' or a block of
// further statements between braces. Arguments are bare words or strings in
// single or double quotes, where a backslash escapes any character.
//
// [Parse] builds a [Config] owning a tree of [Node] values ([*Comment] and
// [*Directive]). Parsing is all-or-nothing: any error yields a nil Config.
// [Print] renders a Config in canonical form, four spaces per level, and
// parsing that output yields a structurally [Equal] tree.
//
// Directives are addressed by paths such as "http:server[1]:listen", where
// each segment names a directive and an optional 0-based occurrence among
// same-named siblings. See [ParsePath] and [Config.ResolvePath]. Resolved
// directives point into the tree and may be edited in place.
package conf
