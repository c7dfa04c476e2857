package main

import (
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	"github.com/watchman-go/watchman/dump"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='render with color'"`

	J bool `cli:"name=j aliases=json desc='output JSON'"`
	P bool `cli:"name=p aliases=pretty desc='output a readable dump'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) dumpOpts(w io.Writer) []dump.Option {
	if cfg.Color {
		return []dump.Option{dump.WithColors(dump.NewColors())}
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return []dump.Option{dump.WithColors(dump.NewColors())}
	}
	return nil
}

// openInput resolves the optional trailing file argument, defaulting to the
// command's input stream.
func openInput(cc *cli.Context, args []string) (io.Reader, func() error, error) {
	if len(args) == 0 || args[0] == "-" {
		return cc.In, nil, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

type DecodeConfig struct {
	*MainConfig

	Decode *cli.Command
}

type EncodeConfig struct {
	*MainConfig

	Encode *cli.Command
}

type QueryConfig struct {
	*MainConfig

	Root         string `cli:"name=root desc='watched root to query'"`
	Glob         string `cli:"name=glob desc='comma-separated glob patterns'"`
	Suffix       string `cli:"name=suffix desc='comma-separated name suffixes'"`
	Path         string `cli:"name=path desc='comma-separated path generator entries'"`
	Since        string `cli:"name=since desc='clock token or unix time for delta queries'"`
	RelativeRoot string `cli:"name=relative-root desc='restrict the query to a subdirectory'"`
	Fields       string `cli:"name=fields desc='comma-separated result fields' default=name"`

	CaseSensitive bool `cli:"name=case-sensitive desc='match names case sensitively'"`
	Dedup         bool `cli:"name=dedup desc='deduplicate results across generators'"`
	FreshEmpty    bool `cli:"name=fresh-empty desc='deliver fresh instance results empty'"`

	SyncTimeoutMS int    `cli:"name=sync-timeout desc='sync timeout in milliseconds, 0 disables' default=-1"`
	RequestID     string `cli:"name=request-id desc='identifier for server-side tracing'"`

	Query *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type ClockConfig struct {
	*MainConfig

	Root          string `cli:"name=root desc='watched root'"`
	SyncTimeoutMS int    `cli:"name=sync-timeout desc='sync timeout in milliseconds' default=-1"`
	NoSync        bool   `cli:"name=no-sync desc='skip cookie synchronization'"`

	Clock *cli.Command
}
