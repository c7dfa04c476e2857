package main

import (
	"errors"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/watchman-go/watchman/bser"
)

func decodePDUs(cfg *DecodeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Decode.Parse(cc, args)
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
	for {
		node, err := bser.Decode(in)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := render(cfg.MainConfig, cc, node); err != nil {
			return err
		}
	}
}
