package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/strata-config/strata"
	"github.com/strata-config/strata/encode"
	"github.com/strata-config/strata/ir"
	"github.com/strata-config/strata/ir/keypath"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a path argument", cli.ErrUsage)
	}
	path, err := keypath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	config, err := strata.Initialize(&strata.Options{
		ConfigFiles: cfg.configFiles(),
		Overrides:   args[1:],
		JobName:     cfg.Job,
		Env:         cfg.Env,
	})
	if err != nil {
		return err
	}
	node := ir.FindPath(config, path)
	if node == nil {
		return fmt.Errorf("%w: no value at %q", ir.ErrUnresolvedReference, args[0])
	}
	return encode.Encode(node, cc.Out, cfg.encOpts(cc.Out)...)
}

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	config, err := strata.Initialize(&strata.Options{
		ConfigFiles: cfg.configFiles(),
		Overrides:   args,
		JobName:     cfg.Job,
		Env:         cfg.Env,
	})
	if err != nil {
		return err
	}
	return encode.Encode(config, cc.Out, cfg.encOpts(cc.Out)...)
}
