package cmd

import "github.com/ardnew/ngxconf/conf"

var (
	ErrWriteConfig   = conf.NewError("write configuration file")
	ErrFileExists    = conf.NewError("file exists (use --force to overwrite)")
	ErrWriteStdin    = conf.NewError("cannot write back to stdin")
	ErrReadSource    = conf.NewError("read source")
	ErrDiffAndWrite  = conf.NewError("--diff cannot be combined with --write")
	ErrUnknownParent = conf.NewError("parent path not found")
	ErrNotCanonical  = conf.NewError("formatted output would change the configuration")
)
