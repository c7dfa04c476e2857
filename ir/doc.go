// Package ir provides the intermediate representation (IR) for watchman
// protocol values.
//
// # Overview
//
// The watchman service speaks a self-describing binary value format (BSER)
// whose values are built from a small set of kinds: null, booleans, signed
// integers, reals, strings, byte strings, ordered arrays and string-keyed
// objects. This package defines the in-memory form of such values as a tree
// of nodes. All protocol data units (see package pdu) encode to and decode
// from ir.Node trees; the bser package maps the trees to and from wire bytes.
//
// The IR works as a recursive tagged union structure, where values are placed
// in fields depending on the node type.
//
// # Node Structure
//
// A Node represents a single value. The Type field indicates the kind:
//
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - IntType: 64-bit signed integer
//   - RealType: 64-bit IEEE float
//   - StringType: UTF-8 string value
//   - BytesType: raw byte string
//   - ArrayType: ordered list of nodes
//   - ObjectType: key-value pairs (fields and values)
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i], so
// there are always the same number of fields as values. Keys are string
// typed. Field order is significant and preserved: the protocol compares
// only by key, but keeping order makes encoding deterministic.
//
// On the wire, strings and byte strings share one representation; decoders
// produce StringType and consumers that require raw bytes can use Bytes().
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("c:1700000000:12345:1:2")
//	num := ir.FromInt(42)
//	flag := ir.FromBool(true)
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: ir.FromString("version"), Val: ir.FromString("2024.01.01")},
//	})
//	arr := ir.FromSlice([]*ir.Node{ir.FromString("query"), ir.FromString("/repo")})
//
// # Navigating Nodes
//
// Nodes maintain parent-child relationships:
//
//   - Parent: parent node (nil for root)
//   - ParentIndex: index in parent's array/object
//   - ParentField: field name if parent is object
//
// Use Get to look up an object field by key, ToMap to obtain a key-indexed
// view, and Visit for tree walks.
//
// # Comparison
//
// Nodes can be compared for equality and order:
//
//	equal := ir.Compare(a, b) == 0
//
// # JSON Interoperability
//
// Nodes convert to and from JSON with ToJSON and FromJSON, preserving object
// field order. Byte strings render as JSON strings. This is the surface used
// by the wm command line tool for inspecting PDUs.
//
// # Thread Safety
//
// Node structures are not thread-safe. If you need to access nodes from
// multiple goroutines, you must synchronize access yourself or clone nodes
// for each goroutine.
//
// # Related Packages
//
//   - github.com/watchman-go/watchman/bser - Binary wire codec for IR nodes
//   - github.com/watchman-go/watchman/gomap - Go struct conversion
//   - github.com/watchman-go/watchman/pdu - Typed protocol data units
package ir
