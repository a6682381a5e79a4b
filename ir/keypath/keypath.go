// Package keypath implements the dotted path expressions shared by
// overrides, interpolation references, and composition group targets.
//
// A path expression separates components with '.'; a backslash escapes
// the following character, so `a\.b.c` names the component "a.b" followed
// by "c". Sequence elements are addressed by their decimal index rendered
// as a component.
package keypath

import (
	"errors"
	"fmt"
	"strings"
)

var ErrParse = errors.New("invalid path")

// Path is an ordered, non-empty sequence of components.
type Path []string

// Parse scans expr left to right, splitting on unescaped dots.
// Empty components, a trailing dot, and a dangling trailing backslash
// are errors.
func Parse(expr string) (Path, error) {
	var (
		path    Path
		current strings.Builder
		escape  bool
	)
	for _, ch := range expr {
		switch {
		case escape:
			current.WriteRune(ch)
			escape = false
		case ch == '\\':
			escape = true
		case ch == '.':
			if current.Len() == 0 {
				return nil, fmt.Errorf("%w: empty component in %q", ErrParse, expr)
			}
			path = append(path, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	if escape {
		return nil, fmt.Errorf("%w: dangling escape in %q", ErrParse, expr)
	}
	if current.Len() == 0 {
		return nil, fmt.Errorf("%w: %q has an empty trailing component", ErrParse, expr)
	}
	return append(path, current.String()), nil
}

// String renders the path back to expression form, escaping dots and
// backslashes inside components. Parse(p.String()) == p for any path.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = escapeComponent(c)
	}
	return strings.Join(parts, ".")
}

func (p Path) Child(component string) Path {
	res := make(Path, 0, len(p)+1)
	res = append(res, p...)
	return append(res, component)
}

func escapeComponent(c string) string {
	var b strings.Builder
	for _, ch := range c {
		if ch == '\\' || ch == '.' {
			b.WriteByte('\\')
		}
		b.WriteRune(ch)
	}
	return b.String()
}
