package encode

import "github.com/strata-config/strata/ir"

// MustString encodes node or panics; for messages and tests.
func MustString(node *ir.Node) string {
	s, err := String(node)
	if err != nil {
		panic(err)
	}
	return s
}
