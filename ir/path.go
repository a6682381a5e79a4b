package ir

import (
	"fmt"

	"github.com/strata-config/strata/ir/keypath"
)

// FindPath walks mappings from root along path. It returns nil, not an
// error, when a component is missing or a non-mapping node is reached
// before the path is exhausted.
func FindPath(root *Node, path keypath.Path) *Node {
	current := root
	for _, component := range path {
		if current.Type != MappingType {
			return nil
		}
		next, ok := current.Map[component]
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

// AssignPath writes value at path under root. When requireNew is false
// the leaf key must already exist and is updated; when true it must be
// absent and is inserted, with intermediate mappings created as needed.
// A null root auto-promotes to an empty mapping.
func AssignPath(root *Node, path keypath.Path, value *Node, requireNew bool) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: cannot assign empty path", ErrStructuralConflict)
	}
	if root.Type != MappingType && root.Type != NullType {
		return fmt.Errorf("%w: root configuration is not a mapping", ErrStructuralConflict)
	}
	if root.Type == NullType {
		*root = *NewMapping()
	}

	current := root
	for i, segment := range path {
		child, exists := current.Map[segment]
		if i+1 == len(path) {
			if !exists {
				if !requireNew {
					return fmt.Errorf(
						"%w: key %q does not exist, use '+%s=...' to add new parameters",
						ErrMissingKey, segment, path)
				}
				current.Set(segment, value)
				return nil
			}
			if requireNew {
				return fmt.Errorf(
					"%w: cannot add new key %q because it already exists",
					ErrStructuralConflict, segment)
			}
			current.Set(segment, value)
			return nil
		}
		if !exists {
			if !requireNew {
				return fmt.Errorf(
					"%w: path component %q does not exist, use '+%s=...' to introduce new nested parameters",
					ErrMissingKey, segment, path)
			}
			child = NewMapping()
			current.Set(segment, child)
		} else if child.Type != MappingType {
			return fmt.Errorf(
				"%w: path component %q refers to a non-mapping node (%s)",
				ErrStructuralConflict, segment, child.Type)
		}
		current = child
	}
	return nil
}
