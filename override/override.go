// Package override parses and applies `[+]path=value` expressions.
package override

import (
	"fmt"
	"strings"

	"github.com/strata-config/strata/debug"
	"github.com/strata-config/strata/ir"
	"github.com/strata-config/strata/ir/keypath"
	"github.com/strata-config/strata/parse"
)

// Override is a point mutation: a path, a value, and a creation mode.
// RequireNew is set by the '+' prefix and flips assignment from
// "update existing key" to "insert new key".
type Override struct {
	Path       keypath.Path
	Value      *ir.Node
	RequireNew bool
}

// Parse splits expr on the first '=' (the value side may contain '='),
// parses the left side as a dotted path and the right side as a value
// literal in the same grammar as a configuration source, so sequences,
// mappings, quoted strings, bare numbers, booleans, and null all work.
func Parse(expr string) (*Override, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: empty override expression", parse.ErrParse)
	}
	working := expr
	requireNew := false
	if working[0] == '+' {
		requireNew = true
		working = working[1:]
		if working == "" {
			return nil, fmt.Errorf("%w: override expression missing key after '+'", parse.ErrParse)
		}
	}
	pathPart, valuePart, found := strings.Cut(working, "=")
	if !found {
		return nil, fmt.Errorf("%w: override expression %q is missing '='", parse.ErrParse, expr)
	}
	if pathPart == "" {
		return nil, fmt.Errorf("%w: override expression %q has empty key", parse.ErrParse, expr)
	}
	if valuePart == "" {
		return nil, fmt.Errorf("%w: override expression %q has empty value", parse.ErrParse, expr)
	}
	path, err := keypath.Parse(pathPart)
	if err != nil {
		return nil, err
	}
	value, err := parseValue(valuePart)
	if err != nil {
		return nil, err
	}
	return &Override{Path: path, Value: value, RequireNew: requireNew}, nil
}

// Apply writes the override into root. See ir.AssignPath for the
// success/failure matrix of RequireNew.
func (ov *Override) Apply(root *ir.Node) error {
	if debug.Override() {
		debug.Logf("override: %s (new=%v)\n", ov.Path, ov.RequireNew)
	}
	return ir.AssignPath(root, ov.Path, ov.Value, ov.RequireNew)
}

// parseValue wraps the literal in a one-key document so flow sequences,
// flow mappings, and quoting all go through the normal source grammar.
func parseValue(literal string) (*ir.Node, error) {
	doc := "value: " + literal + "\n"
	wrapper, err := parse.Parse([]byte(doc), "<override>")
	if err != nil {
		return nil, err
	}
	if wrapper.Type != ir.MappingType {
		return nil, fmt.Errorf("%w: override value %q did not parse to a scalar or container",
			parse.ErrParse, literal)
	}
	value := wrapper.Get("value")
	if value == nil {
		return nil, fmt.Errorf("%w: override value %q did not parse", parse.ErrParse, literal)
	}
	return value, nil
}
