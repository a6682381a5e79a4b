package resolve

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/strata-config/strata/ir"
	"github.com/strata-config/strata/ir/keypath"
	"github.com/strata-config/strata/parse"
)

// evalExpr evaluates an ${expr:...} body with expr-lang. Bodies see the
// pass's extra environment (Options.Env) plus:
//
//	get(path)  the value at a dotted path of the tree, resolved first
//	env(name)  the named environment variable, or ""
func (r *resolver) evalExpr(body string) (string, error) {
	body = strings.TrimSpace(body)
	program, err := expr.Compile(body, r.exprOpts()...)
	if err != nil {
		return "", fmt.Errorf("%w: could not compile expression %q: %v",
			parse.ErrParse, body, err)
	}
	out, err := vm.Run(program, r.env)
	if err != nil {
		return "", fmt.Errorf("error evaluating %q: %w", body, err)
	}
	return anyString(out)
}

func (r *resolver) exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("get", func(params ...any) (any, error) {
			targetPath, err := keypath.Parse(params[0].(string))
			if err != nil {
				return nil, err
			}
			target := ir.FindPath(r.root, targetPath)
			if target == nil {
				return nil, fmt.Errorf("%w: expression reference %q not found",
					ir.ErrUnresolvedReference, params[0])
			}
			if err := r.resolveNode(target, targetPath); err != nil {
				return nil, err
			}
			return ir.ToGo(target)
		},
			new(func(string) any)),
		expr.Function("env", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

func anyString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case nil:
		return "null", nil
	}
	return "", fmt.Errorf("%w: cannot interpolate values of type %T", ir.ErrTypeMismatch, v)
}
