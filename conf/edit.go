package conf

import (
	"context"
	"log/slog"
	"slices"
	"strings"
)

// AddArg appends args to d.
func (d *Directive) AddArg(args ...string) {
	d.Args = append(d.Args, args...)
}

// SetArgs replaces the arguments of d.
func (d *Directive) SetArgs(args ...string) {
	d.Args = slices.Clone(args)
}

// RemoveArg deletes the i-th argument. It reports false if i is out of range.
func (d *Directive) RemoveArg(i int) bool {
	if i < 0 || i >= len(d.Args) {
		return false
	}

	d.Args = slices.Delete(d.Args, i, i+1)

	return true
}

// SetChildren makes d a block holding nodes. No nodes leaves an empty block.
func (d *Directive) SetChildren(nodes ...Node) {
	d.Block = true
	d.Children = append([]Node{}, nodes...)
}

// SetLeaf makes d a ';'-terminated directive, discarding any children.
func (d *Directive) SetLeaf() {
	d.Block = false
	d.Children = nil
}

// Append adds nodes to the end of d's children, turning a leaf into a block.
func (d *Directive) Append(nodes ...Node) {
	if !d.Block {
		d.Block = true
		d.Children = []Node{}
	}

	d.Children = append(d.Children, nodes...)
}

// Remove deletes the index-th child directive named name.
func (d *Directive) Remove(name string, index int) bool {
	i, _, ok := nthIndex(d.Children, Segment{Name: name, Index: index})
	if !ok {
		return false
	}

	d.Children = slices.Delete(d.Children, i, i+1)

	return true
}

// Append adds nodes to the end of the top level.
func (c *Config) Append(nodes ...Node) {
	c.Nodes = append(c.Nodes, nodes...)
}

// scope returns a pointer to the node list that p addresses: the top level
// for an empty path, otherwise the children of the block p resolves to.
func (c *Config) scope(p Path) (*[]Node, bool) {
	if len(p) == 0 {
		return &c.Nodes, true
	}

	d, ok := c.Resolve(p)
	if !ok || !d.Block {
		return nil, false
	}

	return &d.Children, true
}

// locate returns the node list containing the directive p resolves to and
// its position in that list.
func (c *Config) locate(p Path) (*[]Node, int, bool) {
	last, ok := p.Last()
	if !ok {
		return nil, -1, false
	}

	list, ok := c.scope(p.Parent())
	if !ok {
		return nil, -1, false
	}

	i, _, ok := nthIndex(*list, last)

	return list, i, ok
}

// Remove detaches the directive addressed by p from its parent.
func (c *Config) Remove(p Path) bool {
	list, i, ok := c.locate(p)
	if !ok {
		return false
	}

	*list = slices.Delete(*list, i, i+1)

	return true
}

// Insert places n at position index among the nodes of the block addressed
// by parent, or of the top level if parent is empty. Positions count
// comments. An index equal to the number of nodes appends.
func (c *Config) Insert(parent Path, index int, n Node) bool {
	list, ok := c.scope(parent)
	if !ok || index < 0 || index > len(*list) {
		return false
	}

	*list = slices.Insert(*list, index, n)

	return true
}

// Disable comments out the directive addressed by p in place. The comment
// text is a space followed by the directive on one line, so that
//
//	listen 80;
//
// becomes
//
//	# listen 80;
//
// Blocks are collapsed onto the line. A block containing comments cannot
// be disabled, since its comments would be lost. Neither can a directive
// whose one-line form does not parse back to the same directive, such as
// one with an argument holding '#', a quote or a line break.
func (c *Config) Disable(p Path) (*Comment, error) {
	list, i, ok := c.locate(p)
	if !ok {
		return nil, ErrNotFound.With(slog.String("path", p.String()))
	}

	d, _ := (*list)[i].(*Directive)
	if hasComments(d) {
		return nil, ErrNotToggleable.With(
			slog.String("path", p.String()),
			slog.String("reason", "block contains comments"),
		)
	}

	cm := &Comment{Text: " " + Inline(d)}

	if strings.ContainsAny(cm.Text, "\r\n") {
		return nil, ErrNotToggleable.With(
			slog.String("path", p.String()),
			slog.String("reason", "directive spans lines"),
		)
	}

	if back, err := uncomment(cm); err != nil || !Equal(back, d) {
		return nil, ErrNotToggleable.With(
			slog.String("path", p.String()),
			slog.String("reason", "comment does not restore the directive"),
		)
	}

	(*list)[i] = cm

	return cm, nil
}

// Enable reverses [Config.Disable]. The last segment of p selects among the
// comments in the parent scope that parse as a single directive of that
// name: "server[0]:listen[1]" is the second commented-out listen directive
// in the first server block. Comments that do not parse are skipped.
func (c *Config) Enable(p Path) (*Directive, error) {
	last, ok := p.Last()
	if !ok {
		return nil, ErrNotFound
	}

	list, ok := c.scope(p.Parent())
	if !ok {
		return nil, ErrNotFound.With(slog.String("path", p.String()))
	}

	count := 0

	for i, n := range *list {
		cm, ok := n.(*Comment)
		if !ok {
			continue
		}

		d, err := uncomment(cm)
		if err != nil || d.Name != last.Name {
			continue
		}

		if count == last.Index {
			(*list)[i] = d

			return d, nil
		}

		count++
	}

	return nil, ErrNotFound.With(
		slog.String("path", p.String()),
		slog.String("reason", "no disabled directive"),
	)
}

// EnableAt replaces the comment at position index of the scope addressed
// by parent with the directive its text parses to. It fails with the parse
// error if the text is not exactly one directive.
func (c *Config) EnableAt(parent Path, index int) (*Directive, error) {
	list, ok := c.scope(parent)
	if !ok || index < 0 || index >= len(*list) {
		return nil, ErrNotFound.With(
			slog.String("path", parent.String()),
			slog.Int("index", index),
		)
	}

	cm, ok := (*list)[index].(*Comment)
	if !ok {
		return nil, ErrNotToggleable.With(
			slog.Int("index", index),
			slog.String("reason", "not a comment"),
		)
	}

	d, err := uncomment(cm)
	if err != nil {
		return nil, err
	}

	(*list)[index] = d

	return d, nil
}

func uncomment(cm *Comment) (*Directive, error) {
	cfg, err := ParseString(context.Background(), cm.Text)
	if err != nil {
		return nil, err
	}

	if len(cfg.Nodes) != 1 {
		return nil, ErrNotToggleable.With(
			slog.Int("statements", len(cfg.Nodes)),
			slog.String("reason", "comment is not a single directive"),
		)
	}

	d, ok := cfg.Nodes[0].(*Directive)
	if !ok {
		return nil, ErrNotToggleable.With(
			slog.String("reason", "comment is not a directive"),
		)
	}

	clearPositions(d)

	return d, nil
}

func hasComments(d *Directive) bool {
	for _, n := range d.Children {
		switch n := n.(type) {
		case *Comment:
			return true
		case *Directive:
			if hasComments(n) {
				return true
			}
		}
	}

	return false
}

func clearPositions(d *Directive) {
	d.Line, d.Column = 0, 0

	for _, c := range d.Directives() {
		clearPositions(c)
	}
}
