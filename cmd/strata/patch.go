package main

import (
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/strata-config/strata/encode"
	"github.com/strata-config/strata/ir"
	"github.com/strata-config/strata/resolve"
)

// patch applies an RFC 6902 JSON patch to the composed (unresolved)
// tree via its JSON form, then resolves and prints the result.
func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.File == "" {
		return fmt.Errorf("%w: patch requires -p <patch.json>", cli.ErrUsage)
	}
	patchData, err := os.ReadFile(cfg.File)
	if err != nil {
		return fmt.Errorf("could not read patch %q: %w", cfg.File, err)
	}
	ops, err := jsonpatch.DecodePatch(patchData)
	if err != nil {
		return fmt.Errorf("could not decode patch %q: %w", cfg.File, err)
	}

	config, err := composeFiles(cfg.MainConfig, args)
	if err != nil {
		return err
	}
	doc, err := ir.ToJSON(config)
	if err != nil {
		return err
	}
	patched, err := ops.Apply(doc)
	if err != nil {
		return fmt.Errorf("could not apply patch %q: %w", cfg.File, err)
	}
	config, err = ir.FromJSON(patched)
	if err != nil {
		return err
	}
	if err := resolve.Resolve(config); err != nil {
		return err
	}
	return encode.Encode(config, cc.Out, cfg.encOpts(cc.Out)...)
}
