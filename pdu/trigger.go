package pdu

import (
	"github.com/watchman-go/watchman/gomap"
	"github.com/watchman-go/watchman/ir"
)

// TriggerRequest defines a trigger: a command the service spawns whenever
// files matching the expression settle. Unlike queries, trigger
// definitions are stored by the service and listed back to clients, so
// this type round-trips in both directions. The expression and stdin
// configuration are encode-only: servers report stored triggers with
// those fields in server-internal form.
type TriggerRequest struct {
	Name    string   `bser:"field=name"`
	Command []string `bser:"field=command"`

	// AppendFiles appends the matching file names to Command's argv,
	// subject to the system argument length limit.
	AppendFiles bool `bser:"field=append_files,omitempty"`

	Expression Expr               `bser:"field=expression,omitempty,encodeonly"`
	Stdin      TriggerStdinConfig `bser:"field=stdin,omitempty,encodeonly"`

	Stdout string `bser:"field=stdout,omitempty"`
	Stderr string `bser:"field=stderr,omitempty"`

	// MaxFilesStdin bounds how many file names are written to the spawned
	// process; zero means no limit.
	MaxFilesStdin int64 `bser:"field=max_files_stdin,omitempty"`

	Chdir        string `bser:"field=chdir,omitempty"`
	RelativeRoot string `bser:"field=relative_root,omitempty"`
}

// TriggerStdinConfig selects what the spawned process reads on stdin.
// The zero value means devnull, which is the server default, so an unset
// config is omitted from the wire entirely.
type TriggerStdinConfig struct {
	fields      []string
	namePerLine bool
}

// StdinDevNull connects stdin to /dev/null. This is the server default.
func StdinDevNull() TriggerStdinConfig {
	return TriggerStdinConfig{}
}

// IsZero reports whether the config is the devnull default.
func (c TriggerStdinConfig) IsZero() bool {
	return !c.namePerLine && len(c.fields) == 0
}

// StdinFieldNames streams the named fields of each matching file.
func StdinFieldNames(fields ...string) TriggerStdinConfig {
	return TriggerStdinConfig{fields: fields}
}

// StdinNamePerLine streams one file name per line.
func StdinNamePerLine() TriggerStdinConfig {
	return TriggerStdinConfig{namePerLine: true}
}

func (c TriggerStdinConfig) ToIR() (*ir.Node, error) {
	switch {
	case c.namePerLine:
		return ir.FromString("NAME_PER_LINE"), nil
	case len(c.fields) > 0:
		return stringList(c.fields), nil
	default:
		return ir.FromString("/dev/null"), nil
	}
}

// TriggerCommand is the "trigger" envelope.
type TriggerCommand struct {
	Root   string
	Params TriggerRequest
}

func (t *TriggerCommand) ToIR() (*ir.Node, error) {
	params, err := gomap.ToIR(&t.Params)
	if err != nil {
		return nil, err
	}
	return command("trigger", ir.FromString(t.Root), params), nil
}

type TriggerResponse struct {
	Version string `bser:"field=version"`

	// Disposition is "created" or "replaced".
	Disposition string `bser:"field=disposition"`
	Triggerid   string `bser:"field=triggerid,omitempty"`
}

// TriggerDelCommand is the "trigger-del" envelope.
type TriggerDelCommand struct {
	Root string
	Name string
}

func (t *TriggerDelCommand) ToIR() (*ir.Node, error) {
	return command("trigger-del", ir.FromString(t.Root), ir.FromString(t.Name)), nil
}

type TriggerDelResponse struct {
	Version string `bser:"field=version"`
	Deleted bool   `bser:"field=deleted"`
	Trigger string `bser:"field=trigger"`
}

// TriggerListCommand is the "trigger-list" envelope.
type TriggerListCommand struct {
	Root string
}

func (t *TriggerListCommand) ToIR() (*ir.Node, error) {
	return command("trigger-list", ir.FromString(t.Root)), nil
}

type TriggerListResponse struct {
	Version  string           `bser:"field=version"`
	Triggers []TriggerRequest `bser:"field=triggers"`
}
