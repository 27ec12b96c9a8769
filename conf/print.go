package conf

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// IndentWidth is the number of spaces per block level in printed output.
const IndentWidth = 4

// Print renders cfg in canonical form. The result depends only on the tree:
// original spacing, blank lines and quote styles are not retained.
func Print(cfg *Config) string {
	var b strings.Builder

	if cfg != nil {
		printNodes(&b, cfg.Nodes, 0)
	}

	return b.String()
}

func (c *Config) String() string { return Print(c) }

// WriteTo writes the canonical form of c to w.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, Print(c))

	return int64(n), err
}

// Format writes the canonical form of c to w.
func (c *Config) Format(ctx context.Context, w io.Writer, opts ...Option) error {
	o := makeOptions(opts...)

	n, err := c.WriteTo(w)

	o.logger.TraceContext(ctx, "format native", slog.Int64("bytes", n))

	return err
}

// PrintNode renders a single node at depth 0.
func PrintNode(n Node) string {
	var b strings.Builder

	printNode(&b, n, 0)

	return b.String()
}

func printNodes(b *strings.Builder, nodes []Node, depth int) {
	for _, n := range nodes {
		printNode(b, n, depth)
	}
}

func printNode(b *strings.Builder, n Node, depth int) {
	b.WriteString(strings.Repeat(" ", depth*IndentWidth))

	switch n := n.(type) {
	case *Comment:
		b.WriteByte('#')
		b.WriteString(n.Text)
		b.WriteByte('\n')

	case *Directive:
		writeHead(b, n)

		if !n.Block {
			b.WriteString(";\n")

			return
		}

		b.WriteString(" {\n")
		printNodes(b, n.Children, depth+1)
		b.WriteString(strings.Repeat(" ", depth*IndentWidth))
		b.WriteString("}\n")
	}
}

// writeHead writes the directive name and its arguments.
func writeHead(b *strings.Builder, d *Directive) {
	b.WriteString(d.Name)

	for _, arg := range d.Args {
		b.WriteByte(' ')
		b.WriteString(quote(arg))
	}
}

// quote double-quotes s when it contains a space or one of ";{}".
// Only '"' is escaped inside the quotes.
func quote(s string) string {
	if !strings.ContainsAny(s, " ;{}") {
		return s
	}

	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// Inline renders d on a single line, with block children collapsed and
// comments dropped:
//
//	location / { root /srv; index index.html; }
func Inline(d *Directive) string {
	var b strings.Builder

	writeInline(&b, d)

	return b.String()
}

func writeInline(b *strings.Builder, d *Directive) {
	writeHead(b, d)

	if !d.Block {
		b.WriteByte(';')

		return
	}

	b.WriteString(" {")

	for _, n := range d.Children {
		if c, ok := n.(*Directive); ok {
			b.WriteByte(' ')
			writeInline(b, c)
		}
	}

	b.WriteString(" }")
}
