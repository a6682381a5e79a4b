// Package parse reads YAML source text into ir.Node trees.
//
// The YAML reader itself is github.com/goccy/go-yaml; this package walks
// its AST and applies the engine's own scalar interpretation to the raw
// token text, so literal sniffing (int vs. double vs. string) does not
// depend on the reader's YAML schema. Anchors, aliases, and merge keys
// are rejected.
package parse

import (
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"

	"github.com/strata-config/strata/ir"
)

// Parse parses a single YAML document. The name names the source in
// errors (a file path, "<override>", ...). An empty document yields
// null; more than one document is an error.
func Parse(data []byte, name string) (*ir.Node, error) {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w in %s: %v", ErrParse, name, err)
	}
	if len(file.Docs) == 0 {
		return ir.Null(), nil
	}
	if len(file.Docs) > 1 {
		return nil, fmt.Errorf("%w in %s: expected a single document, got %d",
			ErrParse, name, len(file.Docs))
	}
	body := file.Docs[0].Body
	if body == nil {
		return ir.Null(), nil
	}
	node, err := convert(body, name)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func convert(n ast.Node, name string) (*ir.Node, error) {
	switch x := n.(type) {
	case *ast.MappingNode:
		res := ir.NewMapping()
		for _, kv := range x.Values {
			if err := convertPair(res, kv, name); err != nil {
				return nil, err
			}
		}
		return res, nil
	case *ast.MappingValueNode:
		// goccy represents a single-pair mapping as the pair itself
		res := ir.NewMapping()
		if err := convertPair(res, x, name); err != nil {
			return nil, err
		}
		return res, nil
	case *ast.SequenceNode:
		res := ir.NewSequence()
		res.Values = make([]*ir.Node, 0, len(x.Values))
		for _, elt := range x.Values {
			child, err := convert(elt, name)
			if err != nil {
				return nil, err
			}
			res.Values = append(res.Values, child)
		}
		return res, nil
	case *ast.AnchorNode, *ast.AliasNode:
		return nil, fmt.Errorf("%w in %s: YAML anchors and aliases are not supported at %s",
			ErrParse, name, position(n))
	case *ast.MergeKeyNode:
		return nil, fmt.Errorf("%w in %s: YAML merge keys are not supported at %s",
			ErrParse, name, position(n))
	case *ast.TagNode:
		// tags carry no meaning here; interpret the tagged value
		return convert(x.Value, name)
	case *ast.LiteralNode:
		// block scalars are always strings
		return ir.FromString(x.Value.Value), nil
	case *ast.NullNode, *ast.BoolNode, *ast.IntegerNode, *ast.FloatNode,
		*ast.StringNode, *ast.InfinityNode, *ast.NanNode:
		return scalar(n.GetToken()), nil
	}
	return nil, fmt.Errorf("%w in %s: unexpected YAML node %T at %s",
		ErrParse, name, n, position(n))
}

func convertPair(dst *ir.Node, kv *ast.MappingValueNode, name string) error {
	key, err := convert(kv.Key, name)
	if err != nil {
		return err
	}
	if key.Type != ir.StringType {
		return fmt.Errorf("%w in %s: mapping keys must be strings, got %s at %s",
			ErrParse, name, key.Type, position(kv.Key))
	}
	value, err := convert(kv.Value, name)
	if err != nil {
		return err
	}
	dst.Set(key.String, value)
	return nil
}

func scalar(tk *token.Token) *ir.Node {
	if tk.Type == token.SingleQuoteType || tk.Type == token.DoubleQuoteType {
		return ir.FromString(tk.Value)
	}
	return interpretScalar(tk.Value)
}

func position(n ast.Node) string {
	tk := n.GetToken()
	if tk == nil || tk.Position == nil {
		return "<unknown position>"
	}
	return fmt.Sprintf("line %d, column %d", tk.Position.Line, tk.Position.Column)
}
