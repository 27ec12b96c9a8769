package conf

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/jedib0t/go-pretty/v6/list"
)

// commentRecord and directiveRecord fix the field order of exported
// documents. A directive has "children" only if it is a block.
type commentRecord struct {
	Comment string `json:"comment" yaml:"comment"`
}

type directiveRecord struct {
	Name     string   `json:"name"               yaml:"name"`
	Args     []string `json:"args"               yaml:"args,flow"`
	Children *[]any   `json:"children,omitempty" yaml:"children,omitempty"`
}

func records(nodes []Node) []any {
	out := make([]any, 0, len(nodes))

	for _, n := range nodes {
		switch n := n.(type) {
		case *Comment:
			out = append(out, commentRecord{Comment: n.Text})

		case *Directive:
			r := directiveRecord{Name: n.Name, Args: append([]string{}, n.Args...)}
			if n.Block {
				children := records(n.Children)
				r.Children = &children
			}

			out = append(out, r)
		}
	}

	return out
}

// ToNative converts c to plain Go values: a slice with one map per node.
// Comments become {"comment": text}. Directives become {"name", "args"},
// plus "children" (possibly empty) for blocks.
func (c *Config) ToNative() []any {
	return nativeNodes(c.Nodes)
}

func nativeNodes(nodes []Node) []any {
	out := make([]any, 0, len(nodes))

	for _, n := range nodes {
		switch n := n.(type) {
		case *Comment:
			out = append(out, map[string]any{"comment": n.Text})

		case *Directive:
			m := map[string]any{
				"name": n.Name,
				"args": append([]string{}, n.Args...),
			}

			if n.Block {
				m["children"] = nativeNodes(n.Children)
			}

			out = append(out, m)
		}
	}

	return out
}

// MarshalJSON encodes c as a JSON array of nodes.
func (c *Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(records(c.Nodes))
}

// FormatJSON writes c as JSON. An indent of 0 writes a single line.
func (c *Config) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(records(c.Nodes), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(records(c.Nodes))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes c as YAML. An indent of 0 selects flow style.
func (c *Config) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent), yaml.IndentSequence(true))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, records(c.Nodes), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// FormatTree writes a debugging outline of c, one node per line, with
// source positions.
func (c *Config) FormatTree(w io.Writer) error {
	l := list.NewWriter()
	l.SetStyle(list.StyleConnectedLight)

	l.AppendItem("config (" + strconv.Itoa(len(c.Nodes)) + " nodes)")
	l.Indent()
	treeNodes(l, c.Nodes)

	_, err := io.WriteString(w, l.Render()+"\n")

	return err
}

func treeNodes(l list.Writer, nodes []Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Comment:
			l.AppendItem("comment " + strconv.Quote(n.Text))

		case *Directive:
			var b strings.Builder

			if n.Block {
				b.WriteString("block ")
			} else {
				b.WriteString("leaf ")
			}

			b.WriteString(n.Name)

			for _, a := range n.Args {
				b.WriteByte(' ')
				b.WriteString(strconv.Quote(a))
			}

			if n.Line > 0 {
				fmt.Fprintf(&b, " @%d:%d", n.Line, n.Column)
			}

			l.AppendItem(b.String())

			if len(n.Children) > 0 {
				l.Indent()
				treeNodes(l, n.Children)
				l.UnIndent()
			}
		}
	}
}
