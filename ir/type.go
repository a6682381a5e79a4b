package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	IntType
	DoubleType
	StringType
	SequenceType
	MappingType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:     "null",
		BoolType:     "bool",
		IntType:      "int",
		DoubleType:   "double",
		StringType:   "string",
		SequenceType: "sequence",
		MappingType:  "mapping",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"null":     NullType,
		"bool":     BoolType,
		"int":      IntType,
		"double":   DoubleType,
		"string":   StringType,
		"sequence": SequenceType,
		"mapping":  MappingType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		IntType,
		DoubleType,
		StringType,
		SequenceType,
		MappingType,
	}
}

func (t Type) IsScalar() bool {
	switch t {
	case SequenceType, MappingType:
		return false
	default:
		return true
	}
}
