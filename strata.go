// Package strata composes layered YAML configuration sources into one
// typed tree: includes are merged by the compose package, point
// overrides applied by the override package, and ${...} placeholders
// resolved in place by the resolve package. Reads against an
// unresolved tree observe the raw placeholder strings.
package strata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/strata-config/strata/compose"
	"github.com/strata-config/strata/ir"
	"github.com/strata-config/strata/ir/keypath"
	"github.com/strata-config/strata/override"
	"github.com/strata-config/strata/resolve"
)

// DefaultRunDirTemplate is injected at strata.run.dir when a
// configuration does not set one.
const DefaultRunDirTemplate = "outputs/${now:%Y-%m-%d_%H-%M-%S}"

var (
	runDirPath  = keypath.Path{"strata", "run", "dir"}
	jobNamePath = keypath.Path{"strata", "job", "name"}
)

// Options configures Initialize.
type Options struct {
	// ConfigFiles are composed (with their includes) and merged in order.
	ConfigFiles []string
	// Overrides are `[+]path=value` expressions applied after merging.
	Overrides []string
	// JobName defaults strata.job.name; when empty, the executable
	// basename is used.
	JobName string
	// Env holds extra variables for ${expr:...} interpolations.
	Env map[string]any
}

// Initialize runs the whole pipeline: compose each config file, merge
// them in order, inject the strata defaults, apply overrides, default
// the job name, and resolve interpolations. The returned tree is fully
// resolved.
func Initialize(opts *Options) (*ir.Node, error) {
	config := ir.NewMapping()
	for _, path := range opts.ConfigFiles {
		loaded, err := compose.Load(path)
		if err != nil {
			return nil, err
		}
		ir.Merge(config, loaded)
	}
	if err := EnsureDefaults(config); err != nil {
		return nil, err
	}
	for _, expr := range opts.Overrides {
		ov, err := override.Parse(expr)
		if err != nil {
			return nil, err
		}
		if err := ov.Apply(config); err != nil {
			return nil, err
		}
	}
	if err := ensureJobName(config, opts.JobName); err != nil {
		return nil, err
	}
	if err := resolve.ResolveWith(config, &resolve.Options{Env: opts.Env}); err != nil {
		return nil, err
	}
	return config, nil
}

// EnsureDefaults injects the strata.run.dir template when the
// configuration does not carry one. It runs before overrides and
// resolution, so the template is overridable and its ${now:...}
// resolves with everything else.
func EnsureDefaults(config *ir.Node) error {
	if config.Type == ir.NullType {
		*config = *ir.NewMapping()
	}
	if config.Type != ir.MappingType {
		return fmt.Errorf("%w: root configuration is not a mapping", ir.ErrStructuralConflict)
	}
	strataNode := config.Get("strata")
	if strataNode == nil {
		strataNode = ir.NewMapping()
		config.Set("strata", strataNode)
	} else if strataNode.Type != ir.MappingType {
		return fmt.Errorf("%w: 'strata' must be a mapping, got %s",
			ir.ErrStructuralConflict, strataNode.Type)
	}
	runNode := strataNode.Get("run")
	if runNode == nil {
		runNode = ir.NewMapping()
		strataNode.Set("run", runNode)
	} else if runNode.Type != ir.MappingType {
		return fmt.Errorf("%w: 'strata.run' must be a mapping, got %s",
			ir.ErrStructuralConflict, runNode.Type)
	}
	if runNode.Get("dir") == nil {
		runNode.Set("dir", ir.FromString(DefaultRunDirTemplate))
	}
	return nil
}

// RunDir reads strata.run.dir from a resolved tree. ok is false when
// run-dir handling is disabled (the value is null, empty, or absent).
// The returned path is absolute and cleaned.
func RunDir(config *ir.Node) (dir string, ok bool, err error) {
	node := ir.FindPath(config, runDirPath)
	if node == nil || node.Type == ir.NullType {
		return "", false, nil
	}
	if node.Type != ir.StringType {
		return "", false, fmt.Errorf("%w: %s must be a string or null, got %s",
			ir.ErrTypeMismatch, runDirPath, node.Type)
	}
	if node.String == "" {
		return "", false, nil
	}
	abs, err := filepath.Abs(node.String)
	if err != nil {
		return "", false, err
	}
	return filepath.Clean(abs), true, nil
}

// SetRunDir writes the final run-dir decision back into the tree, so
// the serialized configuration records the absolute directory actually
// used (or null when disabled).
func SetRunDir(config *ir.Node, dir string, ok bool) error {
	if !ok {
		return ir.AssignPath(config, runDirPath, ir.Null(), false)
	}
	return ir.AssignPath(config, runDirPath, ir.FromString(dir), false)
}

func ensureJobName(config *ir.Node, jobName string) error {
	if jobName == "" {
		jobName = "app"
		if exe, err := os.Executable(); err == nil {
			jobName = filepath.Base(exe)
		}
	}
	node := ir.FindPath(config, jobNamePath)
	if node == nil {
		return ir.AssignPath(config, jobNamePath, ir.FromString(jobName), true)
	}
	if node.Type == ir.NullType {
		return ir.AssignPath(config, jobNamePath, ir.FromString(jobName), false)
	}
	return nil
}
