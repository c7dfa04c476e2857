package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/scott-cotton/cli"

	"github.com/watchman-go/watchman/pdu"
)

func buildQuery(cfg *QueryConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Query.Parse(cc, args); err != nil {
		return err
	}
	if cfg.Root == "" {
		return fmt.Errorf("%w: -root is required", cli.ErrUsage)
	}
	params := pdu.QueryRequestCommon{
		Glob:                 commaList(cfg.Glob),
		Suffix:               commaList(cfg.Suffix),
		RelativeRoot:         cfg.RelativeRoot,
		Fields:               commaList(cfg.Fields),
		CaseSensitive:        cfg.CaseSensitive,
		DedupResults:         cfg.Dedup,
		EmptyOnFreshInstance: cfg.FreshEmpty,
		RequestID:            cfg.RequestID,
	}
	for _, p := range commaList(cfg.Path) {
		params.Path = append(params.Path, pdu.RecursivePath(p))
	}
	if cfg.Since != "" {
		clock := pdu.Clock{Spec: parseClock(cfg.Since)}
		params.Since = &clock
	}
	params.SyncTimeout = syncTimeoutFlag(cfg.SyncTimeoutMS)

	req := pdu.QueryRequest{Root: cfg.Root, Params: params}
	node, err := req.ToIR()
	if err != nil {
		return err
	}
	return emit(cfg.MainConfig, cc, node)
}

func commaList(v string) []string {
	if v == "" {
		return nil
	}
	return strings.Split(v, ",")
}

// parseClock accepts either a server clock token or a bare unix time.
func parseClock(v string) pdu.ClockSpec {
	if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
		return pdu.UnixTimestamp(ts)
	}
	return pdu.StringClock(v)
}

// syncTimeoutFlag maps the -sync-timeout flag: negative keeps the context
// default, zero disables the cookie, positive is milliseconds.
func syncTimeoutFlag(ms int) pdu.SyncTimeout {
	if ms < 0 {
		return pdu.DefaultSyncTimeout()
	}
	return pdu.SyncTimeoutFor(time.Duration(ms) * time.Millisecond)
}
