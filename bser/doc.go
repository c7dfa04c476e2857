// Package bser implements the BSER v1 binary wire codec for ir.Node trees.
//
// BSER is the self-describing binary serialization used by the watchman
// service on its local socket. A PDU is framed as the two magic bytes
// 0x00 0x01 followed by an encoded integer giving the byte length of the
// payload, followed by a single root value.
//
// Values are a type byte followed by type-specific content:
//
//	0x00  array:    int count, then count values
//	0x01  object:   int count, then count (string key, value) pairs
//	0x02  string:   int byte length, then raw bytes
//	0x03  int8     (little endian)
//	0x04  int16
//	0x05  int32
//	0x06  int64
//	0x07  real:     8-byte IEEE 754 double, little endian
//	0x08  true
//	0x09  false
//	0x0a  null
//	0x0b  template: compact array-of-objects (decode only here)
//	0x0c  skip:     missing field marker inside a template
//
// Integers always encode with the smallest width that can represent the
// value. Strings are length-prefixed byte strings; they carry no encoding
// and decode as ir.StringType.
//
// The encoder never emits templates; the decoder expands them into plain
// arrays of objects, omitting skipped fields, since the server uses the
// template form for file lists in query and subscription results.
//
// Decoding is strict: unknown type bytes, truncated input and trailing
// garbage all produce a *DecodeError reporting the byte offset.
package bser
