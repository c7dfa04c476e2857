// Package gomap provides reflection-driven conversion between Go values and
// watchman IR nodes.
//
// It is the bridge between the typed PDU structs in package pdu and the
// ir.Node trees that the bser codec puts on the wire.
//
// Field visibility:
//   - Only exported (uppercase) struct fields are processed (like encoding/json)
//   - Unexported fields are ignored
//   - Field matching is case-sensitive
//
// Struct tags use the key "bser":
//
//	type SubscribeResponse struct {
//	    Version        string   `bser:"field=version"`
//	    Clock          Clock    `bser:"field=clock"`
//	    AssertedStates []string `bser:"field=asserted-states,omitempty"`
//	    internal       int      // ignored: unexported
//	    Skipped        int      `bser:"-"`
//	}
//
// Tag entries:
//   - field=NAME    wire key for the field (defaults to the Go field name)
//   - omitempty     skip the field when encoding its zero value
//     (nil pointer, empty slice/map/string, false, zero number, or a
//     struct whose IsZero() bool method reports true)
//   - encodeonly    the field is serialized but never populated on decode
//   - "-"           skip the field entirely
//
// Types may take over their own conversion by implementing
//
//	ToIR() (*ir.Node, error)
//	FromIR(*ir.Node) error
//
// gomap defers to these hooks wherever the type appears. The PDU layer uses
// them for every untagged-union type (Clock, ClockSpec, ContentSha1Hex,
// FileType), keeping ambiguity resolution an explicit, testable policy.
//
// Fields of type *ir.Node pass through unconverted, for protocol fields whose
// shape is opaque to the client (state metadata, saved-state-info, trigger
// expressions read back from the server).
//
// Decoding an object ignores unknown wire keys. The protocol requires this
// for forward compatibility: servers may add response fields at any time.
package gomap
