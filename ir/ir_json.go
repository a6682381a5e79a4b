package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ToJSON renders the tree as plain data JSON: mappings become objects,
// sequences arrays, scalars their native JSON forms. The int/double
// distinction survives only as far as JSON number syntax allows.
func ToJSON(y *Node) ([]byte, error) {
	v, err := toGo(y)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// FromJSON parses plain data JSON into a tree. Numbers are re-sniffed:
// integral literals become ints, the rest doubles.
func FromJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return fromGo(v)
}

// ToGo converts a node into the equivalent Go value
// (nil, bool, int64, float64, string, []any, map[string]any).
func ToGo(y *Node) (any, error) {
	return toGo(y)
}

func toGo(y *Node) (any, error) {
	switch y.Type {
	case NullType:
		return nil, nil
	case BoolType:
		return y.Bool, nil
	case IntType:
		return y.Int64, nil
	case DoubleType:
		return y.Float64, nil
	case StringType:
		return y.String, nil
	case SequenceType:
		res := make([]any, len(y.Values))
		for i, yv := range y.Values {
			v, err := toGo(yv)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return res, nil
	case MappingType:
		res := make(map[string]any, len(y.Map))
		for k, yv := range y.Map {
			v, err := toGo(yv)
			if err != nil {
				return nil, err
			}
			res[k] = v
		}
		return res, nil
	}
	return nil, fmt.Errorf("unrepresentable node type %d", y.Type)
}

func fromGo(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case json.Number:
		if i, err := strconv.ParseInt(x.String(), 10, 64); err == nil {
			return FromInt(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("unrepresentable number %q", x.String())
		}
		return FromFloat(f), nil
	case []any:
		res := NewSequence()
		res.Values = make([]*Node, len(x))
		for i := range x {
			yv, err := fromGo(x[i])
			if err != nil {
				return nil, err
			}
			res.Values[i] = yv
		}
		return res, nil
	case map[string]any:
		res := NewMapping()
		for k := range x {
			yv, err := fromGo(x[k])
			if err != nil {
				return nil, err
			}
			res.Set(k, yv)
		}
		return res, nil
	}
	return nil, fmt.Errorf("unrepresentable value of type %T", v)
}
