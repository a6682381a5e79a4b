package ir

import (
	"fmt"
	"maps"
	"slices"
)

// Node is one value in a configuration tree. The Type field selects the
// active variant; the payload lives in the field matching that variant.
// Mapping children are owned exclusively by their parent: Clone produces
// a fully independent tree and Merge copies rather than shares subtrees.
type Node struct {
	Type Type

	Bool    bool
	Int64   int64
	Float64 float64
	String  string

	Values []*Node          // SequenceType elements, in order
	Map    map[string]*Node // MappingType children, keys unique
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: IntType, Int64: v}
}

func FromFloat(v float64) *Node {
	return &Node{Type: DoubleType, Float64: v}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func NewMapping() *Node {
	return &Node{Type: MappingType, Map: map[string]*Node{}}
}

func NewSequence() *Node {
	return &Node{Type: SequenceType}
}

func FromMap(m map[string]*Node) *Node {
	res := NewMapping()
	for k, v := range m {
		res.Map[k] = v
	}
	return res
}

func FromSlice(elts []*Node) *Node {
	return &Node{Type: SequenceType, Values: elts}
}

func (y *Node) IsNull() bool     { return y.Type == NullType }
func (y *Node) IsBool() bool     { return y.Type == BoolType }
func (y *Node) IsInt() bool      { return y.Type == IntType }
func (y *Node) IsDouble() bool   { return y.Type == DoubleType }
func (y *Node) IsString() bool   { return y.Type == StringType }
func (y *Node) IsSequence() bool { return y.Type == SequenceType }
func (y *Node) IsMapping() bool  { return y.Type == MappingType }

// Empty reports whether the node is null or an empty container.
func (y *Node) Empty() bool {
	switch y.Type {
	case NullType:
		return true
	case SequenceType:
		return len(y.Values) == 0
	case MappingType:
		return len(y.Map) == 0
	}
	return false
}

func (y *Node) AsBool() (bool, error) {
	if y.Type != BoolType {
		return false, fmt.Errorf("%w: value is %s, not bool", ErrTypeMismatch, y.Type)
	}
	return y.Bool, nil
}

func (y *Node) AsInt() (int64, error) {
	if y.Type != IntType {
		return 0, fmt.Errorf("%w: value is %s, not int", ErrTypeMismatch, y.Type)
	}
	return y.Int64, nil
}

// AsDouble accepts ints as well, widening them.
func (y *Node) AsDouble() (float64, error) {
	switch y.Type {
	case DoubleType:
		return y.Float64, nil
	case IntType:
		return float64(y.Int64), nil
	}
	return 0, fmt.Errorf("%w: value is %s, not numeric", ErrTypeMismatch, y.Type)
}

func (y *Node) AsString() (string, error) {
	if y.Type != StringType {
		return "", fmt.Errorf("%w: value is %s, not string", ErrTypeMismatch, y.Type)
	}
	return y.String, nil
}

func (y *Node) AsSequence() ([]*Node, error) {
	if y.Type != SequenceType {
		return nil, fmt.Errorf("%w: value is %s, not sequence", ErrTypeMismatch, y.Type)
	}
	return y.Values, nil
}

func (y *Node) AsMapping() (map[string]*Node, error) {
	if y.Type != MappingType {
		return nil, fmt.Errorf("%w: value is %s, not mapping", ErrTypeMismatch, y.Type)
	}
	return y.Map, nil
}

// Get returns the mapping child under field, or nil when the node is not
// a mapping or has no such field.
func (y *Node) Get(field string) *Node {
	if y.Type != MappingType {
		return nil
	}
	return y.Map[field]
}

// Set inserts or overwrites the mapping child under field.
func (y *Node) Set(field string, child *Node) {
	if y.Map == nil {
		y.Map = map[string]*Node{}
	}
	y.Map[field] = child
}

// Keys returns the mapping keys in sorted order. Mapping iteration
// throughout the engine (merge, encode, resolve) goes through Keys so
// output and traversal order are deterministic.
func (y *Node) Keys() []string {
	if y.Type != MappingType {
		return nil
	}
	return slices.Sorted(maps.Keys(y.Map))
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Bool = y.Bool
	dst.Int64 = y.Int64
	dst.Float64 = y.Float64
	dst.String = y.String
	dst.Values = nil
	dst.Map = nil
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.Clone()
		}
	}
	if y.Map != nil {
		dst.Map = make(map[string]*Node, len(y.Map))
		for k, yv := range y.Map {
			dst.Map[k] = yv.Clone()
		}
	}
	return dst
}
