// Package resolve rewrites ${...} placeholders inside string values of a
// composed, override-applied tree, in place.
//
// Expression kinds, tried by prefix:
//
//	${now:<strftime>}          current local time, formatted
//	${oc.env:NAME[,fallback]}  environment lookup with optional fallback
//	${expr:<expression>}       expr-lang expression (see expr.go)
//	${dotted.path}             cross-reference into the tree
//
// Resolution is lazy, memoized, and cycle-safe: each node resolves at
// most once, cross-references force their target to resolve first, and a
// reference cycle is reported instead of looping. Substituted output is
// not re-scanned, so a resolved value containing literal "${" stays as
// is. Timestamps are intentionally not memoized: every now: occurrence
// re-samples the clock.
package resolve

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/strata-config/strata/debug"
	"github.com/strata-config/strata/ir"
	"github.com/strata-config/strata/ir/keypath"
	"github.com/strata-config/strata/parse"
)

// Options tunes a resolution pass.
type Options struct {
	// Env holds extra variables visible to ${expr:...} bodies.
	Env map[string]any
}

// Resolve rewrites all placeholders under root.
func Resolve(root *ir.Node) error {
	return ResolveWith(root, nil)
}

func ResolveWith(root *ir.Node, opts *Options) error {
	r := &resolver{
		root:      root,
		resolving: map[string]bool{},
		resolved:  map[string]bool{},
	}
	if opts != nil {
		r.env = opts.Env
	}
	if r.env == nil {
		r.env = map[string]any{}
	}
	return r.resolveNode(root, nil)
}

// resolver holds a single pass's bookkeeping. Both sets are keyed by
// rendered path and discarded when the pass returns, so a resolved tree
// carries no residual state.
type resolver struct {
	root      *ir.Node
	resolving map[string]bool
	resolved  map[string]bool
	env       map[string]any
}

func (r *resolver) resolveNode(node *ir.Node, path keypath.Path) error {
	key := renderKey(path)
	if r.resolved[key] {
		return nil
	}
	if r.resolving[key] {
		return fmt.Errorf("%w: detected interpolation cycle involving %q",
			ErrCyclicInterpolation, key)
	}
	r.resolving[key] = true

	switch node.Type {
	case ir.MappingType:
		for _, k := range node.Keys() {
			if err := r.resolveNode(node.Map[k], path.Child(k)); err != nil {
				return err
			}
		}
	case ir.SequenceType:
		for i, child := range node.Values {
			if err := r.resolveNode(child, path.Child(strconv.Itoa(i))); err != nil {
				return err
			}
		}
	case ir.StringType:
		resolved, err := r.resolveString(node.String, path)
		if err != nil {
			return err
		}
		if debug.Resolve() && resolved != node.String {
			debug.Logf("resolve: %s: %q -> %q\n", key, node.String, resolved)
		}
		node.String = resolved
	}

	delete(r.resolving, key)
	r.resolved[key] = true
	return nil
}

func (r *resolver) resolveString(value string, path keypath.Path) (string, error) {
	var out strings.Builder
	pos := 0
	for pos < len(value) {
		start := strings.Index(value[pos:], "${")
		if start < 0 {
			out.WriteString(value[pos:])
			break
		}
		start += pos
		out.WriteString(value[pos:start])
		end := strings.IndexByte(value[start+2:], '}')
		if end < 0 {
			return "", fmt.Errorf("%w: unterminated ${...} placeholder in %q",
				parse.ErrParse, value)
		}
		end += start + 2
		resolved, err := r.resolveExpression(value[start+2:end], path)
		if err != nil {
			return "", err
		}
		out.WriteString(resolved)
		pos = end + 1
	}
	return out.String(), nil
}

func (r *resolver) resolveExpression(expression string, path keypath.Path) (string, error) {
	switch {
	case strings.HasPrefix(expression, "now:"):
		return formatNow(strings.TrimPrefix(expression, "now:"))
	case strings.HasPrefix(expression, "oc.env:"):
		return r.resolveEnv(strings.TrimPrefix(expression, "oc.env:"), path)
	case strings.HasPrefix(expression, "expr:"):
		return r.evalExpr(strings.TrimPrefix(expression, "expr:"))
	}
	targetPath, err := keypath.Parse(expression)
	if err != nil {
		return "", err
	}
	target := ir.FindPath(r.root, targetPath)
	if target == nil {
		return "", fmt.Errorf("%w: interpolation reference %q not found",
			ir.ErrUnresolvedReference, expression)
	}
	// resolve the referent first so the reference observes its final value
	// regardless of traversal order
	if err := r.resolveNode(target, targetPath); err != nil {
		return "", err
	}
	return nodeString(target)
}

func (r *resolver) resolveEnv(body string, path keypath.Path) (string, error) {
	name, fallback, hasFallback := strings.Cut(body, ",")
	name = strings.TrimSpace(name)
	fallback = strings.TrimSpace(fallback)

	if v := os.Getenv(name); v != "" {
		return v, nil
	}
	if !hasFallback || fallback == "" {
		return "", nil
	}
	// the fallback goes through the full expression grammar at the same path
	return r.resolveString(fallback, path)
}

func formatNow(pattern string) (string, error) {
	out, err := strftime.Format(pattern, time.Now())
	if err != nil {
		return "", fmt.Errorf("%w: bad now: pattern %q: %v", parse.ErrParse, pattern, err)
	}
	return out, nil
}

func nodeString(node *ir.Node) (string, error) {
	switch node.Type {
	case ir.StringType:
		return node.String, nil
	case ir.IntType:
		return strconv.FormatInt(node.Int64, 10), nil
	case ir.DoubleType:
		return strconv.FormatFloat(node.Float64, 'g', -1, 64), nil
	case ir.BoolType:
		return strconv.FormatBool(node.Bool), nil
	case ir.NullType:
		return "null", nil
	}
	return "", fmt.Errorf("%w: cannot interpolate %s nodes", ir.ErrTypeMismatch, node.Type)
}

func renderKey(path keypath.Path) string {
	if len(path) == 0 {
		return "<root>"
	}
	return path.String()
}
