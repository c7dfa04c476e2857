package main

import (
	"io"

	"github.com/scott-cotton/cli"

	"github.com/watchman-go/watchman/bser"
	"github.com/watchman-go/watchman/ir"
)

func encodePDU(cfg *EncodeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Encode.Parse(cc, args)
	if err != nil {
		return err
	}
	in, closeIn, err := openInput(cc, args)
	if err != nil {
		return err
	}
	if closeIn != nil {
		defer closeIn()
	}
	d, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	node, err := ir.FromJSON(d)
	if err != nil {
		return err
	}
	return bser.Encode(node, cc.Out)
}
