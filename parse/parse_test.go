package parse

import (
	"errors"
	"testing"

	"github.com/strata-config/strata/ir"
)

type scalarTest struct {
	text string
	want *ir.Node
}

func TestInterpretScalar(t *testing.T) {
	tests := []scalarTest{
		{"null", ir.Null()},
		{"NULL", ir.Null()},
		{"~", ir.Null()},
		{"true", ir.FromBool(true)},
		{"False", ir.FromBool(false)},
		{"0", ir.FromInt(0)},
		{"42", ir.FromInt(42)},
		{"-7", ir.FromInt(-7)},
		{"+3", ir.FromInt(3)},
		{"007", ir.FromString("007")},
		{"0x1f", ir.FromString("0x1f")},
		{"99999999999999999999", ir.FromString("99999999999999999999")},
		{"1.5", ir.FromFloat(1.5)},
		{"-0.25", ir.FromFloat(-0.25)},
		{"1e3", ir.FromFloat(1000)},
		{"2.5e-1", ir.FromFloat(0.25)},
		{".5", ir.FromFloat(0.5)},
		{"1.2.3", ir.FromString("1.2.3")},
		{"1e", ir.FromString("1e")},
		{"hello", ir.FromString("hello")},
		{"", ir.FromString("")},
	}
	for _, tc := range tests {
		got := interpretScalar(tc.text)
		if !ir.Equal(got, tc.want) {
			t.Errorf("interpretScalar(%q) = %v %v, want %v", tc.text, got.Type, got, tc.want.Type)
		}
	}
}

func TestParseDocument(t *testing.T) {
	doc := `
name: trainer
batch: 32
rate: 0.001
enabled: true
nothing: null
layers:
- 128
- 64
db:
  host: localhost
  port: 5432
quoted: "42"
single: 'true'
`
	got, err := Parse([]byte(doc), "test.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := ir.FromMap(map[string]*ir.Node{
		"name":    ir.FromString("trainer"),
		"batch":   ir.FromInt(32),
		"rate":    ir.FromFloat(0.001),
		"enabled": ir.FromBool(true),
		"nothing": ir.Null(),
		"layers":  ir.FromSlice([]*ir.Node{ir.FromInt(128), ir.FromInt(64)}),
		"db": ir.FromMap(map[string]*ir.Node{
			"host": ir.FromString("localhost"),
			"port": ir.FromInt(5432),
		}),
		"quoted": ir.FromString("42"),
		"single": ir.FromString("true"),
	})
	if !ir.Equal(got, want) {
		t.Errorf("document mismatch:\ngot  %v\nwant %v", got, want)
	}
}

func TestParseEmpty(t *testing.T) {
	got, err := Parse([]byte(""), "empty.yaml")
	if err != nil {
		t.Fatalf("Parse empty: %v", err)
	}
	if !got.IsNull() {
		t.Errorf("empty input should parse to null, got %v", got.Type)
	}
}

func TestParseScalarDocument(t *testing.T) {
	got, err := Parse([]byte("17"), "scalar.yaml")
	if err != nil {
		t.Fatalf("Parse scalar: %v", err)
	}
	if !got.IsInt() || got.Int64 != 17 {
		t.Errorf("scalar document: got %v", got)
	}
}

func TestParseRejectsAnchors(t *testing.T) {
	doc := `
base: &b
  x: 1
other: *b
`
	if _, err := Parse([]byte(doc), "anchors.yaml"); !errors.Is(err, ErrParse) {
		t.Errorf("anchors should be rejected, got %v", err)
	}
}

func TestParseRejectsMultipleDocuments(t *testing.T) {
	doc := "a: 1\n---\nb: 2\n"
	if _, err := Parse([]byte(doc), "multi.yaml"); !errors.Is(err, ErrParse) {
		t.Errorf("multiple documents should be rejected, got %v", err)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("a: [unclosed"), "bad.yaml"); err == nil {
		t.Errorf("invalid input should fail")
	}
}
