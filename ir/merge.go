package ir

// Merge merges src into dst in place.
//
// The rules, in order:
//   - a null src erases dst (null is an explicit override marker)
//   - a null dst becomes a deep copy of src
//   - two mappings merge key by key, recursing on keys present in both
//   - everything else (type mismatch, two sequences, two scalars) replaces
//     dst with a deep copy of src
//
// Sequences are never merged element-wise.
func Merge(dst, src *Node) {
	if src.Type == NullType {
		src.CloneTo(dst)
		return
	}
	if dst.Type == NullType {
		src.CloneTo(dst)
		return
	}
	if dst.Type == MappingType && src.Type == MappingType {
		for _, key := range src.Keys() {
			sv := src.Map[key]
			dv, ok := dst.Map[key]
			if !ok {
				dst.Set(key, sv.Clone())
				continue
			}
			Merge(dv, sv)
		}
		return
	}
	src.CloneTo(dst)
}

// Merged returns a new tree: a deep copy of base with over merged on top.
func Merged(base, over *Node) *Node {
	res := base.Clone()
	Merge(res, over)
	return res
}
