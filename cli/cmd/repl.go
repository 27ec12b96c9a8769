package cmd

import (
	"context"

	"github.com/ardnew/ngxconf/cli/cmd/repl"
	"github.com/ardnew/ngxconf/log"
)

// Repl explores a configuration interactively.
type Repl struct {
	Source string `arg:"" help:"Source input file." name:"source" type:"existingfile"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	doc, err := load(ctx, r.Source)
	if err != nil {
		return err
	}

	return repl.Run(ctx, doc.cfg, varFrom(ctx, CacheIdentifier), log.Default())
}
