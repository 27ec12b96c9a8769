package conf

import (
	"iter"
	"slices"

	"github.com/sahilm/fuzzy"
)

// Resolve follows p through nodes and returns the directive it addresses.
// Comments are never addressable. Every segment but the last must select a
// block. It reports false for an empty path, a missing name, an index out
// of range, or a descent through a leaf. Resolve never modifies nodes.
func Resolve(nodes []Node, p Path) (*Directive, bool) {
	if len(p) == 0 {
		return nil, false
	}

	var d *Directive

	scope := nodes

	for i, seg := range p {
		var ok bool

		if d, ok = nth(scope, seg); !ok {
			return nil, false
		}

		if i < len(p)-1 {
			if !d.Block {
				return nil, false
			}

			scope = d.Children
		}
	}

	return d, true
}

// nth returns the seg.Index-th directive named seg.Name in nodes.
func nth(nodes []Node, seg Segment) (*Directive, bool) {
	_, d, ok := nthIndex(nodes, seg)

	return d, ok
}

// nthIndex is like nth but also returns the position of the directive in
// nodes.
func nthIndex(nodes []Node, seg Segment) (int, *Directive, bool) {
	if seg.Index < 0 {
		return -1, nil, false
	}

	count := 0

	for i, n := range nodes {
		d, ok := n.(*Directive)
		if !ok || d.Name != seg.Name {
			continue
		}

		if count == seg.Index {
			return i, d, true
		}

		count++
	}

	return -1, nil, false
}

// Resolve returns the directive addressed by p.
func (c *Config) Resolve(p Path) (*Directive, bool) {
	return Resolve(c.Nodes, p)
}

// ResolvePath parses s with [ParsePath] and resolves it. A malformed path is
// reported the same as a miss.
func (c *Config) ResolvePath(s string) (*Directive, bool) {
	p, ok := ParsePath(s)
	if !ok {
		return nil, false
	}

	return c.Resolve(p)
}

// FindDirectives returns the top-level directives named name.
func (c *Config) FindDirectives(name string) []*Directive {
	return findAll(c.Nodes, name)
}

// Find returns the first child directive of d named name.
func (d *Directive) Find(name string) (*Directive, bool) {
	return nth(d.Children, Segment{Name: name})
}

// FindAll returns the child directives of d named name.
func (d *Directive) FindAll(name string) []*Directive {
	return findAll(d.Children, name)
}

func findAll(nodes []Node, name string) []*Directive {
	var ds []*Directive

	for _, n := range nodes {
		if d, ok := n.(*Directive); ok && d.Name == name {
			ds = append(ds, d)
		}
	}

	return ds
}

// Walk yields every directive in depth-first pre-order together with the
// canonical path that resolves to it. Paths yielded are fresh slices.
func (c *Config) Walk() iter.Seq2[Path, *Directive] {
	return func(yield func(Path, *Directive) bool) {
		walk(c.Nodes, nil, yield)
	}
}

func walk(nodes []Node, parent Path, yield func(Path, *Directive) bool) bool {
	seen := map[string]int{}

	for _, n := range nodes {
		d, ok := n.(*Directive)
		if !ok {
			continue
		}

		p := parent.Child(Segment{Name: d.Name, Index: seen[d.Name]})
		seen[d.Name]++

		if !yield(p, d) {
			return false
		}

		if d.Block && !walk(d.Children, p, yield) {
			return false
		}
	}

	return true
}

// Paths returns the canonical path of every directive in pre-order.
func (c *Config) Paths() []string {
	var paths []string

	for p := range c.Walk() {
		paths = append(paths, p.String())
	}

	return paths
}

// Suggest returns up to limit canonical paths that fuzzy-match pattern,
// best match first. It is intended for "did you mean" hints after a miss.
func (c *Config) Suggest(pattern string, limit int) []string {
	if limit <= 0 || pattern == "" {
		return nil
	}

	matches := fuzzy.Find(pattern, c.Paths())

	out := make([]string, 0, min(limit, len(matches)))

	for _, m := range matches {
		if len(out) >= limit {
			break
		}

		out = append(out, m.Str)
	}

	return slices.Clip(out)
}
