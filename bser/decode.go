package bser

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/watchman-go/watchman/debug"
	"github.com/watchman-go/watchman/ir"
)

// Unmarshal decodes one complete framed PDU.
func Unmarshal(data []byte) (*ir.Node, error) {
	d := &decoder{data: data}
	if err := d.header(); err != nil {
		return nil, err
	}
	node, err := d.value()
	if err != nil {
		return nil, err
	}
	if d.off != len(d.data) {
		return nil, d.errf("trailing garbage (%d bytes)", len(d.data)-d.off)
	}
	return node, nil
}

// UnmarshalValue decodes one bare value without PDU framing.
func UnmarshalValue(data []byte) (*ir.Node, error) {
	d := &decoder{data: data}
	node, err := d.value()
	if err != nil {
		return nil, err
	}
	if d.off != len(d.data) {
		return nil, d.errf("trailing garbage (%d bytes)", len(d.data)-d.off)
	}
	return node, nil
}

// Decode reads one framed PDU from r. The reader is consumed only up to the
// end of the PDU, so successive PDUs on a stream decode with successive
// calls.
func Decode(r io.Reader) (*ir.Node, error) {
	head := make([]byte, 2)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, &DecodeError{Offset: 0, Msg: "reading PDU magic", Err: err}
	}
	if !bytes.Equal(head, magic) {
		return nil, &DecodeError{Offset: 0, Msg: "bad PDU magic", Err: ErrBadMagic}
	}
	// The length integer is at most a type byte plus 8 bytes.
	lenBuf := make([]byte, 1, 9)
	if _, err := io.ReadFull(r, lenBuf); err != nil {
		return nil, &DecodeError{Offset: 2, Msg: "reading PDU length", Err: err}
	}
	var width int
	switch lenBuf[0] {
	case typeInt8:
		width = 1
	case typeInt16:
		width = 2
	case typeInt32:
		width = 4
	case typeInt64:
		width = 8
	default:
		return nil, &DecodeError{Offset: 2, Msg: fmt.Sprintf("bad PDU length type 0x%02x", lenBuf[0])}
	}
	lenBuf = lenBuf[:1+width]
	if _, err := io.ReadFull(r, lenBuf[1:]); err != nil {
		return nil, &DecodeError{Offset: 3, Msg: "reading PDU length", Err: err}
	}
	ld := &decoder{data: lenBuf}
	size, err := ld.intValue()
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, &DecodeError{Offset: 2, Msg: fmt.Sprintf("negative PDU length %d", size)}
	}
	if size > maxPDULen {
		return nil, &DecodeError{Offset: 2, Msg: fmt.Sprintf("PDU length %d exceeds limit %d", size, maxPDULen)}
	}
	if debug.Wire() {
		debug.Logf("bser: reading PDU payload of %d bytes\n", size)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, &DecodeError{Offset: 2 + len(lenBuf), Msg: "reading PDU payload", Err: err}
	}
	return UnmarshalValue(payload)
}

type decoder struct {
	data []byte
	off  int
}

func (d *decoder) errf(format string, args ...any) error {
	return &DecodeError{Offset: d.off, Msg: fmt.Sprintf(format, args...)}
}

func (d *decoder) truncated(what string) error {
	return &DecodeError{Offset: d.off, Msg: "reading " + what, Err: ErrTruncated}
}

func (d *decoder) header() error {
	if len(d.data) < len(magic) {
		return d.truncated("PDU magic")
	}
	if !bytes.Equal(d.data[:len(magic)], magic) {
		return &DecodeError{Offset: 0, Msg: "bad PDU magic", Err: ErrBadMagic}
	}
	d.off = len(magic)
	size, err := d.intValue()
	if err != nil {
		return err
	}
	if int64(len(d.data)-d.off) != size {
		return d.errf("PDU length %d does not match payload length %d", size, len(d.data)-d.off)
	}
	return nil
}

func (d *decoder) take(n int, what string) ([]byte, error) {
	// n comes from attacker-controlled length fields; d.off+n can overflow
	if n < 0 || n > len(d.data)-d.off {
		return nil, d.truncated(what)
	}
	res := d.data[d.off : d.off+n]
	d.off += n
	return res, nil
}

func (d *decoder) typeByte() (byte, error) {
	if d.off >= len(d.data) {
		return 0, d.truncated("type byte")
	}
	t := d.data[d.off]
	d.off++
	return t, nil
}

func (d *decoder) value() (*ir.Node, error) {
	if d.off >= len(d.data) {
		return nil, d.truncated("value")
	}
	switch t := d.data[d.off]; t {
	case typeNull:
		d.off++
		return ir.Null(), nil
	case typeTrue:
		d.off++
		return ir.FromBool(true), nil
	case typeFalse:
		d.off++
		return ir.FromBool(false), nil
	case typeInt8, typeInt16, typeInt32, typeInt64:
		v, err := d.intValue()
		if err != nil {
			return nil, err
		}
		return ir.FromInt(v), nil
	case typeReal:
		d.off++
		raw, err := d.take(8, "real")
		if err != nil {
			return nil, err
		}
		return ir.FromFloat(math.Float64frombits(binary.LittleEndian.Uint64(raw))), nil
	case typeString:
		s, err := d.stringValue()
		if err != nil {
			return nil, err
		}
		return ir.FromString(s), nil
	case typeArray:
		return d.array()
	case typeObject:
		return d.object()
	case typeTemplate:
		return d.template()
	default:
		return nil, d.errf("unknown type byte 0x%02x", t)
	}
}

func (d *decoder) intValue() (int64, error) {
	t, err := d.typeByte()
	if err != nil {
		return 0, err
	}
	switch t {
	case typeInt8:
		raw, err := d.take(1, "int8")
		if err != nil {
			return 0, err
		}
		return int64(int8(raw[0])), nil
	case typeInt16:
		raw, err := d.take(2, "int16")
		if err != nil {
			return 0, err
		}
		return int64(int16(binary.LittleEndian.Uint16(raw))), nil
	case typeInt32:
		raw, err := d.take(4, "int32")
		if err != nil {
			return 0, err
		}
		return int64(int32(binary.LittleEndian.Uint32(raw))), nil
	case typeInt64:
		raw, err := d.take(8, "int64")
		if err != nil {
			return 0, err
		}
		return int64(binary.LittleEndian.Uint64(raw)), nil
	default:
		d.off--
		return 0, d.errf("expected integer, got type byte 0x%02x", t)
	}
}

func (d *decoder) stringValue() (string, error) {
	t, err := d.typeByte()
	if err != nil {
		return "", err
	}
	if t != typeString {
		d.off--
		return "", d.errf("expected string, got type byte 0x%02x", t)
	}
	n, err := d.intValue()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", d.errf("negative string length %d", n)
	}
	raw, err := d.take(int(n), "string content")
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (d *decoder) array() (*ir.Node, error) {
	d.off++ // typeArray
	n, err := d.intValue()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, d.errf("negative array length %d", n)
	}
	vals := make([]*ir.Node, 0, min(int(n), 1024))
	for range int(n) {
		v, err := d.value()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return ir.FromSlice(vals), nil
}

func (d *decoder) object() (*ir.Node, error) {
	d.off++ // typeObject
	n, err := d.intValue()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, d.errf("negative object length %d", n)
	}
	res := ir.Object()
	for range int(n) {
		key, err := d.stringValue()
		if err != nil {
			return nil, err
		}
		val, err := d.value()
		if err != nil {
			return nil, err
		}
		res.Field(key, val)
	}
	return res, nil
}

// template decodes the compact array-of-objects form into a plain array.
// Skipped cells omit their key from the row object.
func (d *decoder) template() (*ir.Node, error) {
	d.off++ // typeTemplate
	if d.off >= len(d.data) {
		return nil, d.truncated("template keys")
	}
	if d.data[d.off] != typeArray {
		return nil, d.errf("template keys are type 0x%02x, want an array", d.data[d.off])
	}
	keysNode, err := d.array()
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(keysNode.Values))
	for i, k := range keysNode.Values {
		if k.Type != ir.StringType {
			return nil, d.errf("template key %d is %s, want String", i, k.Type)
		}
		keys[i] = k.String
	}
	n, err := d.intValue()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, d.errf("negative template row count %d", n)
	}
	rows := make([]*ir.Node, 0, min(int(n), 1024))
	for range int(n) {
		row := ir.Object()
		for _, key := range keys {
			if d.off < len(d.data) && d.data[d.off] == typeSkip {
				d.off++
				continue
			}
			val, err := d.value()
			if err != nil {
				return nil, err
			}
			row.Field(key, val)
		}
		rows = append(rows, row)
	}
	return ir.FromSlice(rows), nil
}
