package cmd

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/ardnew/ngxconf/conf"
	"github.com/ardnew/ngxconf/log"
)

// Fmt parses a configuration and prints it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical nginx syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	Tree   Tree   `cmd:""                    help:"Format as a syntax tree."`
}

// Native prints the canonical form of a configuration.
type Native struct {
	Write bool `help:"Rewrite the source file in place." short:"w"`
	Diff  bool `help:"Print a line diff between the source and its canonical form." short:"d"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) error {
	if f.Write && f.Diff {
		return ErrDiffAndWrite
	}

	doc, err := load(ctx, f.Source)
	if err != nil {
		return err
	}

	out := conf.Print(doc.cfg)

	switch {
	case f.Diff:
		_, err = io.WriteString(outputFrom(ctx), lineDiff(doc.text, out))

		return err

	case f.Write:
		if doc.text == out {
			log.DebugContext(ctx, "already canonical", slog.String("path", f.Source))

			return nil
		}

		return writeBack(ctx, f.Source, doc.cfg)

	default:
		_, err = io.WriteString(outputFrom(ctx), out)

		return err
	}
}

// lineDiff renders a line-oriented diff of a and b, each line prefixed
// with "-", "+" or " ". It returns "" when a and b are equal.
func lineDiff(a, b string) string {
	if a == b {
		return ""
	}

	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var sb strings.Builder

	for _, d := range diffs {
		prefix := " "

		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffEqual:
		}

		for line := range strings.Lines(d.Text) {
			sb.WriteString(prefix)
			sb.WriteString(line)

			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n\\ No newline at end of file\n")
			}
		}
	}

	return sb.String()
}

// JSON prints a configuration as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output; 0 for compact." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	doc, err := load(ctx, j.Source)
	if err != nil {
		return err
	}

	return doc.cfg.FormatJSON(ctx, outputFrom(ctx), j.Indent)
}

// YAML prints a configuration as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output; 0 for flow style." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	doc, err := load(ctx, y.Source)
	if err != nil {
		return err
	}

	return doc.cfg.FormatYAML(ctx, outputFrom(ctx), y.Indent)
}

// Tree prints the syntax tree of a configuration with node positions.
type Tree struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) error {
	doc, err := load(ctx, t.Source)
	if err != nil {
		return err
	}

	return doc.cfg.FormatTree(outputFrom(ctx))
}
