package conf

import (
	"strconv"
	"strings"
)

// PathSeparator separates segments in a path expression.
const PathSeparator = ":"

// Segment addresses the Index-th directive named Name within one scope.
type Segment struct {
	Name  string
	Index int
}

func (s Segment) String() string {
	return s.Name + "[" + strconv.Itoa(s.Index) + "]"
}

// Path is a sequence of segments from the root of a Config, e.g.
// "http:server[1]:listen".
type Path []Segment

// ParsePath parses a path expression:
//
//	path    := segment (':' segment)*
//	segment := name ('[' digits ']')?
//	name    := any run of characters except ':' and '['
//
// A bare name selects index 0. It reports false for an empty path or any
// malformed segment.
func ParsePath(s string) (Path, bool) {
	if s == "" {
		return nil, false
	}

	parts := strings.Split(s, PathSeparator)
	p := make(Path, 0, len(parts))

	for _, part := range parts {
		seg, ok := parseSegment(part)
		if !ok {
			return nil, false
		}

		p = append(p, seg)
	}

	return p, true
}

// MustParsePath is like [ParsePath] but panics on a malformed path.
func MustParsePath(s string) Path {
	p, ok := ParsePath(s)
	if !ok {
		panic("conf: malformed path " + strconv.Quote(s))
	}

	return p
}

func parseSegment(s string) (Segment, bool) {
	name, rest, bracket := strings.Cut(s, "[")
	if name == "" {
		return Segment{}, false
	}

	if !bracket {
		return Segment{Name: name}, true
	}

	digits, ok := strings.CutSuffix(rest, "]")
	if !ok || digits == "" {
		return Segment{}, false
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return Segment{}, false
		}
	}

	index, err := strconv.Atoi(digits)
	if err != nil {
		return Segment{}, false
	}

	return Segment{Name: name, Index: index}, true
}

// String renders p with an explicit index on every segment. The result
// parses back to an equal Path.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = seg.String()
	}

	return strings.Join(parts, PathSeparator)
}

// Parent returns p without its last segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}

	return p[:len(p)-1:len(p)-1]
}

// Last returns the final segment of p.
func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}

	return p[len(p)-1], true
}

// Child returns a new Path with seg appended.
func (p Path) Child(seg Segment) Path {
	c := make(Path, len(p), len(p)+1)
	copy(c, p)

	return append(c, seg)
}
