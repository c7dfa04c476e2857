package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/watchman-go/watchman/bser"
	"github.com/watchman-go/watchman/debug"
	"github.com/watchman-go/watchman/dump"
	"github.com/watchman-go/watchman/ir"
)

func wmMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.J && cfg.P {
		return fmt.Errorf("%w: must specify at most one of -j[son] -p[retty]", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// emit writes a request PDU in the selected representation: BSER bytes by
// default, JSON with -j, a readable dump with -p.
func emit(cfg *MainConfig, cc *cli.Context, node *ir.Node) error {
	if debug.PDU() {
		debug.Logf("wm: request PDU:\n%v\n", node)
	}
	switch {
	case cfg.J:
		d, err := ir.ToJSON(node)
		if err != nil {
			return err
		}
		if _, err := cc.Out.Write(d); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cc.Out)
		return err
	case cfg.P:
		return dump.Write(cc.Out, node, cfg.dumpOpts(cc.Out)...)
	default:
		return bser.Encode(node, cc.Out)
	}
}

// render writes a decoded PDU for reading: a dump by default, JSON with -j.
func render(cfg *MainConfig, cc *cli.Context, node *ir.Node) error {
	if cfg.J {
		d, err := ir.ToJSON(node)
		if err != nil {
			return err
		}
		if _, err := cc.Out.Write(d); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cc.Out)
		return err
	}
	return dump.Write(cc.Out, node, cfg.dumpOpts(cc.Out)...)
}
