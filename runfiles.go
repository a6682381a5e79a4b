package strata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/strata-config/strata/encode"
	"github.com/strata-config/strata/ir"
	"github.com/strata-config/strata/ir/keypath"
)

// MetaDirName is the metadata directory created inside the run dir.
const MetaDirName = ".strata"

// WriteRunFiles creates runDir and its metadata directory, recording
// the resolved configuration (config.yaml), the strata subtree
// (strata.yaml), and the raw override expressions (overrides.yaml).
func WriteRunFiles(config *ir.Node, overrides []string, runDir string) error {
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("failed to create run directory %q: %w", runDir, err)
	}
	metaDir := filepath.Join(runDir, MetaDirName)
	if err := os.MkdirAll(metaDir, 0755); err != nil {
		return fmt.Errorf("failed to create metadata directory %q: %w", metaDir, err)
	}
	if err := encode.WriteFile(config, filepath.Join(metaDir, "config.yaml")); err != nil {
		return err
	}

	strataNode := ir.FindPath(config, keypath.Path{"strata"})
	if strataNode == nil {
		strataNode = ir.NewMapping()
	}
	if err := encode.WriteFile(strataNode, filepath.Join(metaDir, "strata.yaml")); err != nil {
		return err
	}

	overridesNode := ir.NewSequence()
	overridesNode.Values = make([]*ir.Node, len(overrides))
	for i, expr := range overrides {
		overridesNode.Values[i] = ir.FromString(expr)
	}
	return encode.WriteFile(overridesNode, filepath.Join(metaDir, "overrides.yaml"))
}
