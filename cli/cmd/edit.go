package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/ngxconf/conf"
	"github.com/ardnew/ngxconf/log"
)

// Set replaces the arguments of the directive at a path.
type Set struct {
	Output `embed:""`

	Create bool   `help:"Append the directive to its parent if it does not exist." short:"c"`
	Source string `default:"-" help:"Source input file or '-' for default stdin." short:"s"`

	Path string   `arg:"" help:"Directive path."`
	Args []string `arg:"" help:"New arguments." optional:""`
}

// Run executes the set command.
func (s *Set) Run(ctx context.Context) error {
	doc, err := load(ctx, s.Source)
	if err != nil {
		return err
	}

	p, ok := conf.ParsePath(s.Path)
	if !ok {
		return notFound(doc.cfg, s.Path)
	}

	if d, ok := doc.cfg.Resolve(p); ok {
		d.SetArgs(s.Args...)
	} else if err := s.create(doc.cfg, p); err != nil {
		return err
	}

	log.DebugContext(ctx, "set", slog.String("path", s.Path), slog.Any("args", s.Args))

	return s.emit(ctx, doc)
}

func (s *Set) create(cfg *conf.Config, p conf.Path) error {
	last, _ := p.Last()
	if !s.Create || last.Index != 0 {
		return notFound(cfg, s.Path)
	}

	d := conf.NewDirective(last.Name, s.Args...)

	parent := p.Parent()
	if len(parent) == 0 {
		cfg.Append(d)

		return nil
	}

	block, ok := cfg.Resolve(parent)
	if !ok || !block.IsBlock() {
		return ErrUnknownParent.With(slog.String("path", parent.String()))
	}

	block.Append(d)

	return nil
}

// Del deletes the directive at a path.
type Del struct {
	Output `embed:""`

	Path   string `arg:"" help:"Directive path."`
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the del command.
func (d *Del) Run(ctx context.Context) error {
	doc, err := load(ctx, d.Source)
	if err != nil {
		return err
	}

	p, ok := conf.ParsePath(d.Path)
	if !ok || !doc.cfg.Remove(p) {
		return notFound(doc.cfg, d.Path)
	}

	return d.emit(ctx, doc)
}

// Disable comments out the directive at a path.
type Disable struct {
	Output `embed:""`

	Path   string `arg:"" help:"Directive path."`
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the disable command.
func (d *Disable) Run(ctx context.Context) error {
	doc, err := load(ctx, d.Source)
	if err != nil {
		return err
	}

	p, ok := conf.ParsePath(d.Path)
	if !ok {
		return notFound(doc.cfg, d.Path)
	}

	if _, err := doc.cfg.Disable(p); err != nil {
		return err
	}

	return d.emit(ctx, doc)
}

// Enable restores a directive commented out by disable. The last path
// segment counts only commented-out directives of that name.
type Enable struct {
	Output `embed:""`

	Path   string `arg:"" help:"Path of the disabled directive."`
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the enable command.
func (e *Enable) Run(ctx context.Context) error {
	doc, err := load(ctx, e.Source)
	if err != nil {
		return err
	}

	p, ok := conf.ParsePath(e.Path)
	if !ok {
		return conf.ErrNotFound.With(slog.String("path", e.Path))
	}

	if _, err := doc.cfg.Enable(p); err != nil {
		return err
	}

	return e.emit(ctx, doc)
}
