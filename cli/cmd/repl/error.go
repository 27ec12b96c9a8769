package repl

import "github.com/ardnew/ngxconf/conf"

// Sentinel errors.
var (
	ErrOutOfBounds  = conf.NewError("index out of range")
	ErrEditDeclined = conf.NewError("decline edit")
	ErrNoConfig     = conf.NewError("no configuration")
)
