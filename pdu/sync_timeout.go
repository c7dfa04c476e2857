package pdu

import (
	"time"

	"github.com/watchman-go/watchman/ir"
)

// The server's default cookie synchronization timeout, in milliseconds.
// Emitted when the default variant must be made explicit (clock and
// state-assertion contexts, where an absent field means "disabled").
const defaultSyncTimeoutMillis = 60_000

type syncKind int

const (
	syncDefault syncKind = iota
	syncDisabled
	syncDuration
)

// SyncTimeout controls how long the server waits to observe a sync cookie
// file before answering. The zero value uses the server default.
//
// Disabling the cookie saves roughly 15ms of latency per call but may
// return results from a slightly outdated view of the filesystem. It is
// safe after an explicitly synchronized query or clock call, since the
// server is then known to be at least as current as that point in time.
type SyncTimeout struct {
	kind syncKind
	d    time.Duration
}

// DefaultSyncTimeout uses the server's default synchronization timeout.
func DefaultSyncTimeout() SyncTimeout {
	return SyncTimeout{}
}

// NoSyncCookie disables the use of a sync cookie.
func NoSyncCookie() SyncTimeout {
	return SyncTimeout{kind: syncDisabled}
}

// SyncTimeoutFor overrides the timeout. A zero duration disables the
// cookie, matching the upstream convention. The server has millisecond
// granularity.
func SyncTimeoutFor(d time.Duration) SyncTimeout {
	if d == 0 {
		return NoSyncCookie()
	}
	return SyncTimeout{kind: syncDuration, d: d}
}

func (s SyncTimeout) IsDefault() bool {
	return s.kind == syncDefault
}

func (s SyncTimeout) IsDisabled() bool {
	return s.kind == syncDisabled
}

// Millis returns the wire encoding: the default variant carries the
// server's current default explicitly, disabled is 0, and any concrete
// duration is its millisecond count.
func (s SyncTimeout) Millis() int64 {
	switch s.kind {
	case syncDisabled:
		return 0
	case syncDuration:
		return s.d.Milliseconds()
	default:
		return defaultSyncTimeoutMillis
	}
}

// addSyncTimeoutQuery applies the query-context policy: an absent field
// means "server default", so the default variant is omitted and everything
// else encodes its millisecond count.
func addSyncTimeoutQuery(obj *ir.Node, s SyncTimeout) {
	if s.IsDefault() {
		return
	}
	obj.Field("sync_timeout", ir.FromInt(s.Millis()))
}

// addSyncTimeoutClock applies the clock/state-assertion-context policy: an
// absent field means "disable synchronization", so the disable variant is
// omitted and the default variant encodes the server default explicitly.
func addSyncTimeoutClock(obj *ir.Node, s SyncTimeout) {
	if s.IsDisabled() {
		return
	}
	obj.Field("sync_timeout", ir.FromInt(s.Millis()))
}

// SettleDurationMs is a duration that encodes purely as its millisecond
// count.
type SettleDurationMs time.Duration

func (s SettleDurationMs) ToIR() (*ir.Node, error) {
	return ir.FromInt(time.Duration(s).Milliseconds()), nil
}

func (s *SettleDurationMs) FromIR(node *ir.Node) error {
	if node.Type != ir.IntType {
		return shapeErr("SettleDurationMs", node)
	}
	*s = SettleDurationMs(time.Duration(node.Int64) * time.Millisecond)
	return nil
}
