// Package ir provides the typed tree representation for configuration
// documents.
//
// # Node Structure
//
// A Node is a tagged variant holding exactly one of: null, bool, int,
// double, string, sequence, or mapping. The Type field selects the
// variant; assigning a new value replaces the variant entirely.
//
// Mapping keys are unique strings; sequence elements are ordered. The
// tree is strictly ownership-shaped: a child belongs to exactly one
// container, and Clone produces a fully independent tree.
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	obj := ir.FromMap(map[string]*ir.Node{
//	    "key": ir.FromString("value"),
//	})
//
// # Merge
//
// Merge implements the engine's composition rule: mappings merge deeply,
// everything else is replaced, and null erases. See Merge for the exact
// order of the rules.
//
// # Paths
//
// FindPath and AssignPath navigate and mutate mappings using
// keypath.Path, the dotted path grammar shared by overrides and
// interpolation references.
//
// # Thread Safety
//
// Node trees are not safe for concurrent mutation. A fully resolved tree
// may be read concurrently; nothing in this package mutates on read.
package ir
