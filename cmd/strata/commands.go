package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{Env: map[string]any{}}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		{
			Name:        "c",
			Aliases:     []string{"config"},
			Description: "configuration file to compose (repeatable)",
			Type:        cli.NamedFuncOpt(cfg.configOpt, "(filepath)"),
		},
		{
			Name:        "e",
			Description: "extra variable for ${expr:...} interpolations",
			Type:        cli.NamedFuncOpt(cfg.envOpt, "(name=value)"),
		},
		{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "strata").
		WithSynopsis("strata [opts] [command [opts]] [overrides]").
		WithDescription("strata composes, overrides, and resolves layered configuration.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return strataMain(cfg, cc, args)
		}).
		WithSubs(
			ComposeCommand(cfg),
			GetCommand(cfg),
			ViewCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg))
}

func ComposeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ComposeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Compose, "compose").
		WithAliases("c", "co").
		WithSynopsis("compose [overrides]").
		WithDescription("compose and override without resolving interpolations").
		WithRun(func(cc *cli.Context, args []string) error {
			return composeCmd(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <path> [overrides]").
		WithDescription("print the resolved value at a dotted path").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [overrides]").
		WithDescription("print the resolved configuration").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff <a.yaml> <b.yaml>").
		WithDescription("diff the canonical forms of two resolved configurations").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithSynopsis("patch -p <patch.json> [overrides]").
		WithDescription("apply a JSON patch to the composed configuration, then resolve").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}
