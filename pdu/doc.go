// Package pdu defines the typed request and response protocol data units
// exchanged with the watchman file-watching service.
//
// # Overview
//
// Every interaction with the service is one request PDU answered by one
// response PDU. Requests encode as ordered arrays whose first element is the
// command name, usually followed by the watched root and a configuration
// object:
//
//	["clock", "/repo", {"sync_timeout": 5000}]
//	["query", "/repo", {"fields": ["name"], "since": "c:123:45"}]
//	["subscribe", "/repo", "mysub", {...}]
//
// This package converts between these shapes and Go values via ir.Node
// trees; the bser package handles the wire bytes. The layer is purely
// data-in/data-out: it opens no sockets, spawns no processes and holds no
// shared state, so values may be built and decoded concurrently as long as
// each value is owned by one goroutine.
//
// # Untagged unions
//
// Several wire values are polymorphic: a Clock is either a plain clock spec
// or an object carrying source-control metadata; a ClockSpec is either an
// opaque token string or a legacy unix timestamp; a ContentSha1Hex is a hex
// digest, an error record, or null. Each such type resolves its shape with
// an explicit ordered list of attempts in its FromIR method; no match is a
// *DecodeError, never a panic. The order matters and is part of the wire
// contract: a bare scalar must always resolve to the plain variant.
//
// # Sync timeout contexts
//
// SyncTimeout has context-dependent absence semantics, inherited from the
// upstream protocol. In a query configuration an absent sync_timeout means
// "server default", so the default variant is omitted. In clock and
// state-enter/state-leave configurations an absent sync_timeout means
// "disable synchronization", so there the disable variant is omitted and
// the default variant, when emitted, carries the server's one minute
// default explicitly. This asymmetry is deliberate; do not "fix" it.
//
// # Incremental queries
//
// Callers thread the Clock from each QueryResult back into the next
// request's Since field. A result with IsFreshInstance set represents the
// complete current state: the caller must discard knowledge of any file not
// listed, or its view diverges. This package only supplies the types that
// make that contract expressible; it does not enforce call ordering.
//
// # Forward compatibility
//
// Response decoding ignores unknown object keys. Servers add fields over
// time and the client must keep working. Conversely, fields whose Go zero
// value equals the protocol default are omitted on encode, since some
// servers treat mere key presence as an override signal.
package pdu
