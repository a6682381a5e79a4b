package encode

import (
	"github.com/fatih/color"

	"github.com/strata-config/strata/ir"
)

type Colors struct {
	Key   func(string, ...any) string
	Value map[ir.Type]func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Key: color.RGB(128, 168, 196).SprintfFunc(),
		Value: map[ir.Type]func(string, ...any) string{
			ir.NullType:   color.RGB(168, 0, 196).SprintfFunc(),
			ir.BoolType:   color.New(color.FgCyan).SprintfFunc(),
			ir.IntType:    color.RGB(128, 216, 236).SprintfFunc(),
			ir.DoubleType: color.RGB(128, 216, 236).SprintfFunc(),
			ir.StringType: color.RGB(8, 196, 16).SprintfFunc(),
		},
	}
}

func (es *encState) colorKey(s string) string {
	if es.colors == nil || es.colors.Key == nil {
		return s
	}
	return es.colors.Key("%s", s)
}

func (es *encState) colorValue(t ir.Type, s string) string {
	if es.colors == nil {
		return s
	}
	f, ok := es.colors.Value[t]
	if !ok {
		return s
	}
	return f("%s", s)
}
