package main

import (
	"github.com/scott-cotton/cli"

	"github.com/strata-config/strata/compose"
	"github.com/strata-config/strata/encode"
	"github.com/strata-config/strata/ir"
	"github.com/strata-config/strata/override"
)

// composeCmd composes and overrides but skips interpolation, so the
// output shows raw ${...} placeholders.
func composeCmd(cfg *ComposeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Compose.Parse(cc, args)
	if err != nil {
		return err
	}
	config, err := composeFiles(cfg.MainConfig, args)
	if err != nil {
		return err
	}
	return encode.Encode(config, cc.Out, cfg.encOpts(cc.Out)...)
}

// composeFiles merges the configured files and applies the given
// override expressions, returning the unresolved tree.
func composeFiles(cfg *MainConfig, overrides []string) (*ir.Node, error) {
	config := ir.NewMapping()
	for _, path := range cfg.configFiles() {
		loaded, err := compose.Load(path)
		if err != nil {
			return nil, err
		}
		ir.Merge(config, loaded)
	}
	for _, expr := range overrides {
		ov, err := override.Parse(expr)
		if err != nil {
			return nil, err
		}
		if err := ov.Apply(config); err != nil {
			return nil, err
		}
	}
	return config, nil
}
