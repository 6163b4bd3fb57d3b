package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "planc").
		WithSynopsis("planc [opts] command [opts]").
		WithDescription("planc compiles planning problems feature by feature.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return plancMain(cfg, cc, args)
		}).
		WithSubs(
			ShowCommand(cfg),
			CompileCommand(cfg),
			KindsCommand(cfg))
}

func ShowCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ShowConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("show").
		WithAliases("s").
		WithSynopsis("show [problem]").
		WithDescription("show a demo problem; with no argument, list them").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return show(cfg, cc, args)
		})
	cfg.Show = cmd
	return cmd
}

func CompileCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CompileConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "k",
		Aliases:     []string{"kind"},
		Description: "compilation kind to apply, repeatable (default: canonical order)",
		Type:        cli.NamedFuncOpt(cfg.kindOpt, "(kind)"),
	})
	cmd := cli.NewCommand("compile").
		WithAliases("c").
		WithSynopsis("compile [-k kind]... [-diff] <problem>").
		WithDescription("run a compiler pipeline over a demo problem").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return compile(cfg, cc, args)
		})
	cfg.Compile = cmd
	return cmd
}

func KindsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &KindsConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("kinds").
		WithAliases("k").
		WithSynopsis("kinds").
		WithDescription("list compilation kinds and their registered compilers").
		WithRun(func(cc *cli.Context, args []string) error {
			return kinds(cfg, cc, args)
		})
	cfg.Kinds = cmd
	return cmd
}
