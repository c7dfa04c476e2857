package pdu

import (
	"github.com/watchman-go/watchman/ir"
)

// GetSockNameRequest is the "get-sockname" envelope. This is typically the
// first command issued when discovering a running service.
type GetSockNameRequest struct{}

func (GetSockNameRequest) ToIR() (*ir.Node, error) {
	return command("get-sockname"), nil
}

type GetSockNameResponse struct {
	Version  string `bser:"field=version"`
	Sockname string `bser:"field=sockname,omitempty"`
	Error    string `bser:"field=error,omitempty"`
}

// GetVersionRequest is the "version" envelope.
type GetVersionRequest struct{}

func (GetVersionRequest) ToIR() (*ir.Node, error) {
	return command("version"), nil
}

type GetVersionResponse struct {
	Version string `bser:"field=version"`
}

// WatchListRequest is the "watch-list" envelope; it enumerates the roots
// the service is currently watching.
type WatchListRequest struct{}

func (WatchListRequest) ToIR() (*ir.Node, error) {
	return command("watch-list"), nil
}

type WatchListResponse struct {
	Version string   `bser:"field=version"`
	Roots   []string `bser:"field=roots"`
}

// WatchProjectRequest is the "watch-project" envelope. The service
// resolves the given path to an enclosing project root and watches that.
type WatchProjectRequest struct {
	Path string
}

func (w *WatchProjectRequest) ToIR() (*ir.Node, error) {
	return command("watch-project", ir.FromString(w.Path)), nil
}

type WatchProjectResponse struct {
	Version string `bser:"field=version"`

	// Watch is the resolved project root actually being watched.
	Watch string `bser:"field=watch"`

	// RelativePath is where Path sits under Watch; empty when Path is the
	// root itself. Prepend it to paths in subsequent queries against Watch.
	RelativePath string `bser:"field=relative_path,omitempty"`

	// Watcher names the filesystem watcher implementation in use.
	Watcher string `bser:"field=watcher,omitempty"`
}

// ClockRequestParams carries the optional sync timeout for a "clock"
// command. In this context the server default is cookie synchronization
// with a 60 second timeout, so the default variant encodes explicitly and
// only the disabled variant is expressed by omission.
type ClockRequestParams struct {
	SyncTimeout SyncTimeout
}

func (c ClockRequestParams) ToIR() (*ir.Node, error) {
	obj := ir.Object()
	addSyncTimeoutClock(obj, c.SyncTimeout)
	return obj, nil
}

// ClockRequest is the "clock" envelope.
type ClockRequest struct {
	Root   string
	Params ClockRequestParams
}

func (c *ClockRequest) ToIR() (*ir.Node, error) {
	params, err := c.Params.ToIR()
	if err != nil {
		return nil, err
	}
	return command("clock", ir.FromString(c.Root), params), nil
}

type ClockResponse struct {
	Version string    `bser:"field=version"`
	Clock   ClockSpec `bser:"field=clock"`
}

// GetConfigRequest is the "get-config" envelope.
type GetConfigRequest struct {
	Root string
}

func (g *GetConfigRequest) ToIR() (*ir.Node, error) {
	return command("get-config", ir.FromString(g.Root)), nil
}

// WatchmanConfig is the subset of the per-root configuration this layer
// understands; unrecognized settings are ignored.
type WatchmanConfig struct {
	IgnoreDirs []string `bser:"field=ignore_dirs,omitempty"`
}

type GetConfigResponse struct {
	Version string         `bser:"field=version"`
	Config  WatchmanConfig `bser:"field=config"`
}

// StateEnterLeaveParams configures a state assertion. Metadata is passed
// through to subscribers observing the state change.
type StateEnterLeaveParams struct {
	Name     string
	Metadata *ir.Node

	// SyncTimeout follows the clock-context policy: the default variant
	// encodes its 60 second value and only disabled is omitted.
	SyncTimeout SyncTimeout
}

func (s *StateEnterLeaveParams) ToIR() (*ir.Node, error) {
	obj := ir.Object().Field("name", ir.FromString(s.Name))
	if s.Metadata != nil {
		obj.Field("metadata", s.Metadata)
	}
	addSyncTimeoutClock(obj, s.SyncTimeout)
	return obj, nil
}

// StateEnterRequest is the "state-enter" envelope.
type StateEnterRequest struct {
	Root   string
	Params StateEnterLeaveParams
}

func (s *StateEnterRequest) ToIR() (*ir.Node, error) {
	params, err := s.Params.ToIR()
	if err != nil {
		return nil, err
	}
	return command("state-enter", ir.FromString(s.Root), params), nil
}

// StateLeaveRequest is the "state-leave" envelope.
type StateLeaveRequest struct {
	Root   string
	Params StateEnterLeaveParams
}

func (s *StateLeaveRequest) ToIR() (*ir.Node, error) {
	params, err := s.Params.ToIR()
	if err != nil {
		return nil, err
	}
	return command("state-leave", ir.FromString(s.Root), params), nil
}

type StateEnterResponse struct {
	Version    string    `bser:"field=version"`
	Root       string    `bser:"field=root"`
	StateEnter string    `bser:"field=state-enter"`
	Clock      ClockSpec `bser:"field=clock"`
}

type StateLeaveResponse struct {
	Version    string    `bser:"field=version"`
	Root       string    `bser:"field=root"`
	StateLeave string    `bser:"field=state-leave"`
	Clock      ClockSpec `bser:"field=clock"`
}

// GetAssertedStatesRequest is the "debug-get-asserted-states" envelope.
type GetAssertedStatesRequest struct {
	Root string
}

func (g *GetAssertedStatesRequest) ToIR() (*ir.Node, error) {
	return command("debug-get-asserted-states", ir.FromString(g.Root)), nil
}

// AssertedState is one currently asserted state on a root.
type AssertedState struct {
	Name  string `bser:"field=name"`
	State string `bser:"field=state"`
}

type GetAssertedStatesResponse struct {
	Version string          `bser:"field=version"`
	Root    string          `bser:"field=root"`
	States  []AssertedState `bser:"field=states"`
}
