package conf

import "strings"

// Node is a statement in a configuration: either a [*Comment] or a
// [*Directive]. The set of implementations is closed.
type Node interface {
	node()
}

// Comment is a standalone '#' comment. Text excludes the '#' and is kept
// byte-for-byte, including any leading space.
type Comment struct {
	Text string
}

// Directive is a named statement with arguments, terminated either by ';'
// (a leaf) or by a brace-delimited block of child statements.
//
// Block records which terminator applies. A block may have no children; a
// leaf never has any. Line and Column locate the directive name in the
// parsed source and are zero for directives built in code.
type Directive struct {
	Name     string
	Args     []string
	Block    bool
	Children []Node
	Line     int
	Column   int
}

func (*Comment) node()   {}
func (*Directive) node() {}

// NewDirective returns a leaf directive.
func NewDirective(name string, args ...string) *Directive {
	return &Directive{Name: name, Args: args}
}

// NewBlock returns a block directive with the given children.
func NewBlock(name string, args []string, children ...Node) *Directive {
	if children == nil {
		children = []Node{}
	}

	return &Directive{Name: name, Args: args, Block: true, Children: children}
}

// IsBlock reports whether d is terminated by a block rather than ';'.
func (d *Directive) IsBlock() bool { return d.Block }

// Value returns the arguments joined by single spaces.
func (d *Directive) Value() string { return strings.Join(d.Args, " ") }

// Directives returns the child directives of d, skipping comments.
func (d *Directive) Directives() []*Directive { return directives(d.Children) }

// Config is a parsed configuration file. It exclusively owns every node
// reachable from Nodes.
type Config struct {
	Nodes []Node
}

// Directives returns the top-level directives, skipping comments.
func (c *Config) Directives() []*Directive { return directives(c.Nodes) }

func directives(nodes []Node) []*Directive {
	var ds []*Directive

	for _, n := range nodes {
		if d, ok := n.(*Directive); ok {
			ds = append(ds, d)
		}
	}

	return ds
}
