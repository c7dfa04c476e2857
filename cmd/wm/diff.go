package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/watchman-go/watchman/bser"
	"github.com/watchman-go/watchman/dump"
	"github.com/watchman-go/watchman/ir"
)

func diffPDUs(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff takes exactly two files", cli.ErrUsage)
	}
	fromText, err := dumpFile(args[0])
	if err != nil {
		return err
	}
	toText, err := dumpFile(args[1])
	if err != nil {
		return err
	}

	dmp := diffpatch.New()
	fromRunes, toRunes, lines := dmp.DiffLinesToChars(fromText, toText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(fromRunes, toRunes, false), lines)

	useColor := cfg.Color
	if !useColor {
		// reuse the dump color policy for tty detection
		useColor = len(cfg.dumpOpts(cc.Out)) > 0
	}
	for _, d := range diffs {
		prefix, paint := " ", fmt.Sprintf
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, paint = "-", color.RedString
		case diffpatch.DiffInsert:
			prefix, paint = "+", color.GreenString
		}
		for line := range strings.Lines(d.Text) {
			out := prefix + " " + strings.TrimSuffix(line, "\n")
			if useColor {
				out = paint("%s", out)
			}
			if _, err := fmt.Fprintln(cc.Out, out); err != nil {
				return err
			}
		}
	}
	return nil
}

// dumpFile decodes one PDU from path and renders it without colors, so the
// diff operates on stable text.
func dumpFile(path string) (string, error) {
	node, err := decodeFile(path)
	if err != nil {
		return "", err
	}
	buf := bytes.NewBuffer(nil)
	if err := dump.Write(buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func decodeFile(path string) (*ir.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return bser.Decode(f)
}
