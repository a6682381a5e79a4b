package encode

type EncodeOption func(*encState)

// EncodeIndent sets the spaces per nesting level (default 2).
func EncodeIndent(n int) EncodeOption {
	return func(es *encState) {
		if n > 0 {
			es.indent = n
		}
	}
}

// EncodeColors turns on colored output for terminals. Colors wrap the
// rendered tokens only; the byte content of keys and values is unchanged.
func EncodeColors(colors *Colors) EncodeOption {
	return func(es *encState) {
		es.colors = colors
	}
}
