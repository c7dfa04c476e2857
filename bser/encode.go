package bser

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/watchman-go/watchman/debug"
	"github.com/watchman-go/watchman/ir"
)

// Marshal encodes a value as a complete framed PDU: magic header, payload
// length, then the root value.
func Marshal(node *ir.Node) ([]byte, error) {
	payload, err := MarshalValue(node)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(payload)+len(magic)+9)
	out = append(out, magic...)
	out = appendInt(out, int64(len(payload)))
	out = append(out, payload...)
	return out, nil
}

// MarshalValue encodes a bare value without PDU framing.
func MarshalValue(node *ir.Node) ([]byte, error) {
	return appendValue(nil, node)
}

// Encode writes a framed PDU to w.
func Encode(node *ir.Node, w io.Writer) error {
	d, err := Marshal(node)
	if err != nil {
		return err
	}
	if debug.Wire() {
		debug.Logf("bser: writing PDU of %d bytes\n", len(d))
	}
	_, err = w.Write(d)
	return err
}

// MustMarshal is Marshal for values known to be encodable; it panics on
// error. Intended for tests and fixed literals.
func MustMarshal(node *ir.Node) []byte {
	d, err := Marshal(node)
	if err != nil {
		panic(err)
	}
	return d
}

func appendValue(out []byte, node *ir.Node) ([]byte, error) {
	if node == nil {
		return append(out, typeNull), nil
	}
	switch node.Type {
	case ir.NullType:
		return append(out, typeNull), nil
	case ir.BoolType:
		if node.Bool {
			return append(out, typeTrue), nil
		}
		return append(out, typeFalse), nil
	case ir.IntType:
		return appendInt(out, node.Int64), nil
	case ir.RealType:
		out = append(out, typeReal)
		return binary.LittleEndian.AppendUint64(out, math.Float64bits(node.Float64)), nil
	case ir.StringType:
		return appendString(out, []byte(node.String)), nil
	case ir.BytesType:
		return appendString(out, node.Bytes), nil
	case ir.ArrayType:
		out = append(out, typeArray)
		out = appendInt(out, int64(len(node.Values)))
		var err error
		for _, v := range node.Values {
			if out, err = appendValue(out, v); err != nil {
				return nil, err
			}
		}
		return out, nil
	case ir.ObjectType:
		out = append(out, typeObject)
		out = appendInt(out, int64(len(node.Fields)))
		var err error
		for i := range node.Fields {
			key := node.Fields[i]
			if key.Type != ir.StringType {
				return nil, &EncodeError{
					Msg: fmt.Sprintf("object key must be a string, got %s", key.Type),
				}
			}
			out = appendString(out, []byte(key.String))
			if out, err = appendValue(out, node.Values[i]); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	return nil, &EncodeError{Msg: fmt.Sprintf("cannot encode type %s", node.Type)}
}

func appendString(out []byte, d []byte) []byte {
	out = append(out, typeString)
	out = appendInt(out, int64(len(d)))
	return append(out, d...)
}

// appendInt encodes v with the smallest width that represents it.
func appendInt(out []byte, v int64) []byte {
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return append(out, typeInt8, byte(v))
	case v >= math.MinInt16 && v <= math.MaxInt16:
		out = append(out, typeInt16)
		return binary.LittleEndian.AppendUint16(out, uint16(v))
	case v >= math.MinInt32 && v <= math.MaxInt32:
		out = append(out, typeInt32)
		return binary.LittleEndian.AppendUint32(out, uint32(v))
	default:
		out = append(out, typeInt64)
		return binary.LittleEndian.AppendUint64(out, uint64(v))
	}
}
