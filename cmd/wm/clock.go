package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/watchman-go/watchman/pdu"
)

func buildClock(cfg *ClockConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Clock.Parse(cc, args); err != nil {
		return err
	}
	if cfg.Root == "" {
		return fmt.Errorf("%w: -root is required", cli.ErrUsage)
	}
	req := pdu.ClockRequest{Root: cfg.Root}
	if cfg.NoSync {
		req.Params.SyncTimeout = pdu.NoSyncCookie()
	} else {
		req.Params.SyncTimeout = syncTimeoutFlag(cfg.SyncTimeoutMS)
	}
	node, err := req.ToIR()
	if err != nil {
		return err
	}
	return emit(cfg.MainConfig, cc, node)
}
