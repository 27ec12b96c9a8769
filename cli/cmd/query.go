package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/ngxconf/conf"
)

// suggestLimit bounds the "did you mean" hints attached to a miss.
const suggestLimit = 3

// notFound reports a path that does not resolve in cfg, with the closest
// existing paths as hints.
func notFound(cfg *conf.Config, path string) error {
	msg := path

	if hints := cfg.Suggest(path, suggestLimit); len(hints) > 0 {
		msg += " (did you mean " + strings.Join(hints, ", ") + "?)"
	}

	return conf.ErrNotFound.Wrap(errors.New(msg)).With(slog.String("path", path))
}

// Get prints the directive at a path.
type Get struct {
	Value bool `help:"Print only the directive's arguments." short:"v"`

	Path   string `arg:"" help:"Directive path, e.g. http:server[1]:listen."`
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) error {
	doc, err := load(ctx, g.Source)
	if err != nil {
		return err
	}

	d, ok := doc.cfg.ResolvePath(g.Path)
	if !ok {
		return notFound(doc.cfg, g.Path)
	}

	w := outputFrom(ctx)

	if g.Value {
		_, err = fmt.Fprintln(w, d.Value())
	} else {
		_, err = io.WriteString(w, conf.PrintNode(d))
	}

	return err
}

// Paths lists the canonical path of every directive.
type Paths struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the paths command.
func (p *Paths) Run(ctx context.Context) error {
	doc, err := load(ctx, p.Source)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	for path := range doc.cfg.Walk() {
		if _, err := fmt.Fprintln(w, path); err != nil {
			return err
		}
	}

	return nil
}

// Find prints the directives matching a filter expression, one per line as
// path, a tab, and the directive on a single line.
type Find struct {
	Filter string `arg:"" help:"Boolean expression over name, args, value, path, depth and block."`
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the find command.
func (f *Find) Run(ctx context.Context) error {
	filter, err := conf.Compile(f.Filter)
	if err != nil {
		return err
	}

	doc, err := load(ctx, f.Source)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	for path, d := range doc.cfg.Select(filter) {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", path, conf.Inline(d)); err != nil {
			return err
		}
	}

	return nil
}
