package conf

import "slices"

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	return &Config{Nodes: cloneNodes(c.Nodes)}
}

// Clone returns a deep copy of d.
func (d *Directive) Clone() *Directive {
	if d == nil {
		return nil
	}

	clone := *d
	clone.Args = slices.Clone(d.Args)
	clone.Children = cloneNodes(d.Children)

	return &clone
}

// Clone returns a copy of c.
func (c *Comment) Clone() *Comment {
	if c == nil {
		return nil
	}

	clone := *c

	return &clone
}

// CloneNode returns a deep copy of n.
func CloneNode(n Node) Node {
	switch n := n.(type) {
	case *Comment:
		return n.Clone()
	case *Directive:
		return n.Clone()
	default:
		return nil
	}
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}

	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = CloneNode(n)
	}

	return out
}

// Equal reports whether a and b have the same structure: node kinds, comment
// text, directive names and arguments, leaf or block, and children in order.
// Source positions are ignored. A nil argument list equals an empty one.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *Comment:
		b, ok := b.(*Comment)

		return ok && a.Text == b.Text

	case *Directive:
		b, ok := b.(*Directive)

		return ok &&
			a.Name == b.Name &&
			a.Block == b.Block &&
			slices.Equal(a.Args, b.Args) &&
			equalNodes(a.Children, b.Children)

	default:
		return a == nil && b == nil
	}
}

// Equal reports whether c and o are structurally equal; see [Equal].
func (c *Config) Equal(o *Config) bool {
	if c == nil || o == nil {
		return c == o
	}

	return equalNodes(c.Nodes, o.Nodes)
}

func equalNodes(a, b []Node) bool {
	return slices.EqualFunc(a, b, Equal)
}
