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

	return cli.NewCommandAt(&cfg.Main, "wm").
		WithSynopsis("wm [opts] command [opts]").
		WithDescription("wm is a tool for working with watchman protocol data.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return wmMain(cfg, cc, args)
		}).
		WithSubs(
			DecodeCommand(cfg),
			EncodeCommand(cfg),
			QueryCommand(cfg),
			ClockCommand(cfg),
			DiffCommand(cfg))
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("di").
		WithSynopsis("diff <a> <b>").
		WithDescription("diff two BSER PDU files as rendered text").
		WithRun(func(cc *cli.Context, args []string) error {
			return diffPDUs(cfg, cc, args)
		})
}

func DecodeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DecodeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Decode, "decode").
		WithAliases("d", "de").
		WithSynopsis("decode [file]").
		WithDescription("decode BSER PDUs from a file or stdin").
		WithRun(func(cc *cli.Context, args []string) error {
			return decodePDUs(cfg, cc, args)
		})
}

func EncodeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EncodeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Encode, "encode").
		WithAliases("e", "en").
		WithSynopsis("encode [file]").
		WithDescription("encode a JSON value from a file or stdin as a BSER PDU").
		WithRun(func(cc *cli.Context, args []string) error {
			return encodePDU(cfg, cc, args)
		})
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Query, "query").
		WithAliases("q").
		WithSynopsis("query -root <path> [opts]").
		WithDescription("build a query request PDU from flags").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return buildQuery(cfg, cc, args)
		})
}

func ClockCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ClockConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Clock, "clock").
		WithSynopsis("clock -root <path> [-sync-timeout ms | -no-sync]").
		WithDescription("build a clock request PDU").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return buildClock(cfg, cc, args)
		})
}
