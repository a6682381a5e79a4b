package parse

import (
	"strconv"
	"strings"

	"github.com/strata-config/strata/ir"
)

// interpretScalar applies the literal sniffing rules to a raw plain
// scalar. The int and float grammars below are deliberately narrow
// (no leading zeros, no hex, int overflow falls through to string);
// downstream override and interpolation semantics depend on the
// resulting type, so keep them as they are.
func interpretScalar(text string) *ir.Node {
	switch strings.ToLower(text) {
	case "null", "~":
		return ir.Null()
	case "true":
		return ir.FromBool(true)
	case "false":
		return ir.FromBool(false)
	}
	if isIntegerLiteral(text) {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return ir.FromInt(i)
		}
		// out of int64 range: fall through
	}
	if isFloatLiteral(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return ir.FromFloat(f)
		}
	}
	return ir.FromString(text)
}

func isIntegerLiteral(text string) bool {
	if text == "" {
		return false
	}
	pos := 0
	if text[pos] == '-' || text[pos] == '+' {
		pos++
		if pos >= len(text) {
			return false
		}
	}
	if text[pos] == '0' && len(text) > pos+1 {
		return false // no leading zeros (avoids octal/hex ambiguity)
	}
	for ; pos < len(text); pos++ {
		if text[pos] < '0' || text[pos] > '9' {
			return false
		}
	}
	return true
}

func isFloatLiteral(text string) bool {
	if text == "" {
		return false
	}
	var hasDigit, hasDot, hasExp bool
	pos := 0
	if text[pos] == '-' || text[pos] == '+' {
		pos++
		if pos >= len(text) {
			return false
		}
	}
	for ; pos < len(text); pos++ {
		ch := text[pos]
		switch {
		case ch >= '0' && ch <= '9':
			hasDigit = true
		case ch == '.':
			if hasDot || hasExp {
				return false
			}
			hasDot = true
		case ch == 'e' || ch == 'E':
			if hasExp || !hasDigit {
				return false
			}
			hasExp = true
			hasDigit = false
			if pos+1 < len(text) && (text[pos+1] == '+' || text[pos+1] == '-') {
				pos++
			}
		default:
			return false
		}
	}
	return hasDigit && (hasDot || hasExp)
}
