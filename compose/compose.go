// Package compose loads a configuration source together with its declared
// includes.
//
// A mapping root may carry a reserved `defaults` key holding a sequence of
// include entries. Each entry is loaded recursively and merged into an
// accumulator, in order, before the root's own body (minus `defaults`)
// merges on top — so the root wins on conflicting scalars and sequences
// and deep-merges on conflicting mappings.
//
// Entry forms:
//
//	- relative/include        merge the include at the root
//	- {group: name}           place group/name.yaml under the `group` path
//	- _self_                  sentinel, skipped (the body merges last anyway)
//
// A leading '?' on an include (or on a group key) makes it optional:
// a missing file is skipped instead of failing. Includes without a file
// extension get ".yaml" appended, and relative includes resolve against
// the including file's directory, never the process working directory.
package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/strata-config/strata/debug"
	"github.com/strata-config/strata/ir"
	"github.com/strata-config/strata/ir/keypath"
	"github.com/strata-config/strata/parse"
)

// DefaultExtension is appended to include paths that have none.
const DefaultExtension = ".yaml"

const (
	defaultsKey = "defaults"
	selfMarker  = "_self_"
)

// Load composes the file at path with all of its includes.
func Load(path string) (*ir.Node, error) {
	visiting := map[string]bool{}
	return load(path, visiting)
}

func load(path string, visiting map[string]bool) (*ir.Node, error) {
	normalized := normalizePath(path)
	if visiting[normalized] {
		return nil, fmt.Errorf("%w: recursive configuration include involving %q",
			ErrCyclicInclude, normalized)
	}
	visiting[normalized] = true
	defer delete(visiting, normalized)

	if debug.Compose() {
		debug.Logf("compose: loading %s\n", normalized)
	}

	data, err := os.ReadFile(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read %q: %v", ErrIO, normalized, err)
	}
	root, err := parse.Parse(data, normalized)
	if err != nil {
		return nil, err
	}
	if root.Type != ir.MappingType {
		return root, nil
	}

	result := ir.NewMapping()
	if defaults, ok := root.Map[defaultsKey]; ok {
		if defaults.Type != ir.SequenceType {
			return nil, fmt.Errorf("%w: %q must be a sequence in %s",
				ErrDefaults, defaultsKey, normalized)
		}
		baseDir := filepath.Dir(normalized)
		for _, entry := range defaults.Values {
			if entry.Type == ir.StringType && entry.String == selfMarker {
				continue
			}
			spec, err := parseDefaultEntry(entry, baseDir, normalized)
			if err != nil {
				return nil, err
			}
			if _, err := os.Stat(spec.includePath); err != nil {
				if spec.optional {
					if debug.Compose() {
						debug.Logf("compose: skipping optional include %s\n", spec.includePath)
					}
					continue
				}
				return nil, fmt.Errorf("%w: included configuration %q not found",
					ir.ErrUnresolvedReference, spec.includePath)
			}
			child, err := load(spec.includePath, visiting)
			if err != nil {
				return nil, err
			}
			if spec.targetPath == nil {
				ir.Merge(result, child)
				continue
			}
			if existing := ir.FindPath(result, spec.targetPath); existing != nil {
				ir.Merge(existing, child)
				continue
			}
			if err := ir.AssignPath(result, spec.targetPath, child, true); err != nil {
				return nil, err
			}
		}
		delete(root.Map, defaultsKey)
	}
	ir.Merge(result, root)
	return result, nil
}

type defaultSpec struct {
	includePath string
	targetPath  keypath.Path // nil: merge at the root
	optional    bool
}

func parseDefaultEntry(entry *ir.Node, baseDir, source string) (*defaultSpec, error) {
	switch entry.Type {
	case ir.StringType:
		value, optional := stripOptionalMarker(entry.String)
		return &defaultSpec{
			includePath: includePath(value, baseDir),
			optional:    optional,
		}, nil
	case ir.MappingType:
		if len(entry.Map) != 1 {
			return nil, fmt.Errorf(
				"%w: mapping entries must contain exactly one key (%s)",
				ErrDefaults, source)
		}
		key := entry.Keys()[0]
		value := entry.Map[key]
		if value.Type != ir.StringType {
			return nil, fmt.Errorf("%w: mapping entry values must be strings (%s)",
				ErrDefaults, source)
		}
		key, optional := stripOptionalMarker(key)
		targetPath, err := keypath.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("%w: bad group key %q in %s: %v",
				ErrDefaults, key, source, err)
		}
		return &defaultSpec{
			includePath: includePath(filepath.Join(key, value.String), baseDir),
			targetPath:  targetPath,
			optional:    optional,
		}, nil
	}
	return nil, fmt.Errorf("%w: unsupported entry type %s in %s",
		ErrDefaults, entry.Type, source)
}

func stripOptionalMarker(v string) (string, bool) {
	if !strings.HasPrefix(v, "?") {
		return strings.TrimSpace(v), false
	}
	return strings.TrimSpace(strings.TrimPrefix(v[1:], " ")), true
}

func includePath(candidate, baseDir string) string {
	if filepath.Ext(candidate) == "" {
		candidate += DefaultExtension
	}
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(baseDir, candidate)
	}
	return filepath.Clean(candidate)
}

// normalizePath canonicalizes a path for cycle detection: absolute, and
// symlink-resolved where the file system cooperates.
func normalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return filepath.Clean(abs)
}
