package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/strata-config/strata"
	"github.com/strata-config/strata/encode"
)

// strataMain dispatches to a subcommand when the first argument names
// one; everything else is an override expression for the full pipeline.
func strataMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		if sub := cfg.Main.FindSub(cc, args[0]); sub != nil {
			err := sub.Run(cc, args[1:])
			if errors.Is(err, cli.ErrUsage) {
				sub.Usage(cc, err)
				os.Exit(sub.Exit(cc, err))
			}
			return err
		}
	}
	return runPipeline(cfg, cc, args)
}

func runPipeline(cfg *MainConfig, cc *cli.Context, overrides []string) error {
	config, err := strata.Initialize(&strata.Options{
		ConfigFiles: cfg.configFiles(),
		Overrides:   overrides,
		JobName:     cfg.Job,
		Env:         cfg.Env,
	})
	if err != nil {
		return err
	}

	runDir, ok, err := strata.RunDir(config)
	if err != nil {
		return err
	}
	if err := strata.SetRunDir(config, runDir, ok); err != nil {
		return err
	}
	if err := encode.Encode(config, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cc.Out, "# strata.run.dir is null; skipping run directory creation")
		return nil
	}
	if cfg.NoRun {
		return nil
	}
	if err := strata.WriteRunFiles(config, overrides, runDir); err != nil {
		return err
	}
	fmt.Fprintf(cc.Out, "# run directory: %s\n", runDir)
	return nil
}
