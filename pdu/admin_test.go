package pdu

import (
	"testing"
	"time"

	"github.com/watchman-go/watchman/gomap"
	"github.com/watchman-go/watchman/ir"
)

func TestNoArgEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		req  interface{ ToIR() (*ir.Node, error) }
	}{
		{"get-sockname", GetSockNameRequest{}},
		{"version", GetVersionRequest{}},
		{"watch-list", WatchListRequest{}},
	}
	for _, tt := range tests {
		node, err := tt.req.ToIR()
		if err != nil {
			t.Fatal(err)
		}
		if node.Type != ir.ArrayType || len(node.Values) != 1 {
			t.Fatalf("%s envelope = %v", tt.name, node)
		}
		if node.Values[0].String != tt.name {
			t.Errorf("command = %q, want %q", node.Values[0].String, tt.name)
		}
	}
}

func TestWatchProject(t *testing.T) {
	req := WatchProjectRequest{Path: "/repo/sub/dir"}
	node, err := req.ToIR()
	if err != nil {
		t.Fatal(err)
	}
	if len(node.Values) != 2 || node.Values[1].String != "/repo/sub/dir" {
		t.Fatalf("envelope = %v", node)
	}

	var res WatchProjectResponse
	err = gomap.FromIR(ir.Object().
		Field("version", ir.FromString("4.9.0")).
		Field("watch", ir.FromString("/repo")).
		Field("relative_path", ir.FromString("sub/dir")).
		Field("watcher", ir.FromString("inotify")), &res)
	if err != nil {
		t.Fatal(err)
	}
	if res.Watch != "/repo" || res.RelativePath != "sub/dir" || res.Watcher != "inotify" {
		t.Errorf("res = %+v", res)
	}
}

func TestClockRequest(t *testing.T) {
	req := ClockRequest{Root: "/repo"}
	node, err := req.ToIR()
	if err != nil {
		t.Fatal(err)
	}
	if len(node.Values) != 3 || node.Values[0].String != "clock" {
		t.Fatalf("envelope = %v", node)
	}
	// default in this context is explicit synchronization
	params := node.Values[2]
	if got := ir.Get(params, "sync_timeout"); got == nil || got.Int64 != 60000 {
		t.Errorf("sync_timeout = %v", got)
	}

	req.Params.SyncTimeout = NoSyncCookie()
	node, err = req.ToIR()
	if err != nil {
		t.Fatal(err)
	}
	if got := ir.Get(node.Values[2], "sync_timeout"); got != nil {
		t.Error("disabled sync should be omitted in the clock context")
	}

	var res ClockResponse
	err = gomap.FromIR(ir.Object().
		Field("version", ir.FromString("4.9.0")).
		Field("clock", ir.FromString("c:7:7")), &res)
	if err != nil {
		t.Fatal(err)
	}
	if tok, _ := res.Clock.Token(); tok != "c:7:7" {
		t.Errorf("clock = %q", tok)
	}
}

func TestGetConfig(t *testing.T) {
	req := GetConfigRequest{Root: "/repo"}
	node, err := req.ToIR()
	if err != nil {
		t.Fatal(err)
	}
	if len(node.Values) != 2 || node.Values[0].String != "get-config" {
		t.Fatalf("envelope = %v", node)
	}

	var res GetConfigResponse
	err = gomap.FromIR(ir.Object().
		Field("version", ir.FromString("4.9.0")).
		Field("config", ir.Object().
			Field("ignore_dirs", ir.FromSlice([]*ir.Node{ir.FromString(".cache")})).
			Field("some_other_setting", ir.FromBool(true))), &res)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Config.IgnoreDirs) != 1 || res.Config.IgnoreDirs[0] != ".cache" {
		t.Errorf("config = %+v", res.Config)
	}
}

func TestStateEnterLeave(t *testing.T) {
	meta := ir.Object().Field("rev", ir.FromString("abc"))
	req := StateEnterRequest{
		Root: "/repo",
		Params: StateEnterLeaveParams{
			Name:        "hg.update",
			Metadata:    meta,
			SyncTimeout: SyncTimeoutFor(time.Second),
		},
	}
	node, err := req.ToIR()
	if err != nil {
		t.Fatal(err)
	}
	if len(node.Values) != 3 || node.Values[0].String != "state-enter" {
		t.Fatalf("envelope = %v", node)
	}
	params := node.Values[2]
	if got := ir.Get(params, "name"); got.String != "hg.update" {
		t.Errorf("name = %q", got.String)
	}
	if got := ir.Get(params, "metadata"); got == nil || ir.Get(got, "rev") == nil {
		t.Errorf("metadata = %v", got)
	}
	if got := ir.Get(params, "sync_timeout"); got.Int64 != 1000 {
		t.Errorf("sync_timeout = %v", got)
	}

	leave := StateLeaveRequest{Root: "/repo", Params: StateEnterLeaveParams{Name: "hg.update"}}
	node, err = leave.ToIR()
	if err != nil {
		t.Fatal(err)
	}
	if node.Values[0].String != "state-leave" {
		t.Errorf("command = %q", node.Values[0].String)
	}
	// default sync in a state assertion is the explicit server default
	if got := ir.Get(node.Values[2], "sync_timeout"); got == nil || got.Int64 != 60000 {
		t.Errorf("sync_timeout = %v", got)
	}
	if got := ir.Get(node.Values[2], "metadata"); got != nil {
		t.Error("absent metadata should be omitted")
	}
}

func TestGetAssertedStates(t *testing.T) {
	req := GetAssertedStatesRequest{Root: "/repo"}
	node, err := req.ToIR()
	if err != nil {
		t.Fatal(err)
	}
	if node.Values[0].String != "debug-get-asserted-states" {
		t.Fatalf("envelope = %v", node)
	}

	var res GetAssertedStatesResponse
	err = gomap.FromIR(ir.Object().
		Field("version", ir.FromString("4.9.0")).
		Field("root", ir.FromString("/repo")).
		Field("states", ir.FromSlice([]*ir.Node{
			ir.Object().
				Field("name", ir.FromString("hg.update")).
				Field("state", ir.FromString("Asserted")),
		})), &res)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.States) != 1 || res.States[0].Name != "hg.update" || res.States[0].State != "Asserted" {
		t.Errorf("states = %+v", res.States)
	}
}
