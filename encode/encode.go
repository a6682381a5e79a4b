// Package encode renders ir.Node trees in canonical block style.
//
// Mappings render as `key: value` lines and sequences as `- value`
// lines, nested containers indented two spaces per level, empty
// containers inline as {} and []. Scalar quoting is conservative: any
// string that could re-parse as something else (keywords, numbers,
// significant punctuation) is double-quoted with C-style escapes, as
// are mapping keys containing a literal dot. Output re-parses to an
// equal tree for any tree without NaN or infinite doubles.
package encode

import (
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/strata-config/strata/ir"
)

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &encState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return encodeNode(node, w, 0, es)
}

// String encodes to a string.
func String(node *ir.Node, opts ...EncodeOption) (string, error) {
	var b strings.Builder
	if err := Encode(node, &b, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteFile encodes node into the file at path, plain (no colors).
func WriteFile(node *ir.Node, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if err := Encode(node, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type encState struct {
	indent int
	colors *Colors
}

func encodeNode(node *ir.Node, w io.Writer, depth int, es *encState) error {
	switch node.Type {
	case ir.MappingType:
		return encodeMapping(node, w, depth, es)
	case ir.SequenceType:
		return encodeSequence(node, w, depth, es)
	}
	return writeString(w, pad(depth, es)+formatScalar(node, es)+"\n")
}

func encodeMapping(node *ir.Node, w io.Writer, depth int, es *encState) error {
	if len(node.Map) == 0 {
		return writeString(w, pad(depth, es)+"{}\n")
	}
	for _, key := range node.Keys() {
		value := node.Map[key]
		head := pad(depth, es) + formatKey(key, es) + ":"
		if err := writeEntry(head, value, w, depth, es); err != nil {
			return err
		}
	}
	return nil
}

func encodeSequence(node *ir.Node, w io.Writer, depth int, es *encState) error {
	if len(node.Values) == 0 {
		return writeString(w, pad(depth, es)+"[]\n")
	}
	for _, item := range node.Values {
		if err := writeEntry(pad(depth, es)+"-", item, w, depth, es); err != nil {
			return err
		}
	}
	return nil
}

// writeEntry writes a `key:` or `-` head followed by its value: empty
// containers inline, non-empty ones on following indented lines.
func writeEntry(head string, value *ir.Node, w io.Writer, depth int, es *encState) error {
	switch value.Type {
	case ir.MappingType:
		if len(value.Map) == 0 {
			return writeString(w, head+" {}\n")
		}
		if err := writeString(w, head+"\n"); err != nil {
			return err
		}
		return encodeMapping(value, w, depth+1, es)
	case ir.SequenceType:
		if len(value.Values) == 0 {
			return writeString(w, head+" []\n")
		}
		if err := writeString(w, head+"\n"); err != nil {
			return err
		}
		return encodeSequence(value, w, depth+1, es)
	}
	return writeString(w, head+" "+formatScalar(value, es)+"\n")
}

func formatScalar(node *ir.Node, es *encState) string {
	var s string
	switch node.Type {
	case ir.NullType:
		s = "null"
	case ir.BoolType:
		s = strconv.FormatBool(node.Bool)
	case ir.IntType:
		s = strconv.FormatInt(node.Int64, 10)
	case ir.DoubleType:
		s = formatDouble(node.Float64)
	case ir.StringType:
		s = node.String
		if needsQuoting(s, false) {
			s = escapeString(s)
		}
	}
	return es.colorValue(node.Type, s)
}

func formatKey(key string, es *encState) string {
	if needsQuoting(key, true) {
		key = escapeString(key)
	}
	return es.colorKey(key)
}

// formatDouble renders the shortest form that re-parses to the same
// double, forcing a trailing ".0" onto integral values so the result
// re-parses as a double, not an int.
func formatDouble(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !math.IsInf(f, 0) && !math.IsNaN(f) {
		s += ".0"
	}
	return s
}

func needsQuoting(value string, isKey bool) bool {
	if value == "" {
		return true
	}
	if isKeyword(value) || looksLikeNumber(value) {
		return true
	}
	if strings.ContainsAny(value, ":#&*?|-<>=!%@\n\t") {
		return true
	}
	if value[0] == ' ' || value[len(value)-1] == ' ' {
		return true
	}
	if isKey && strings.Contains(value, ".") {
		return true
	}
	return false
}

// isKeyword matches the reader's case-insensitive keyword recognition,
// so any spelling that would re-parse as bool or null gets quoted.
func isKeyword(value string) bool {
	switch strings.ToLower(value) {
	case "true", "false", "null", "~":
		return true
	}
	return false
}

func looksLikeNumber(value string) bool {
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

func escapeString(value string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, ch := range value {
		switch ch {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(ch)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func pad(depth int, es *encState) string {
	return strings.Repeat(" ", depth*es.indent)
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}
