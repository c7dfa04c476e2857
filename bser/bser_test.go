package bser

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/watchman-go/watchman/ir"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
	}{
		{"null", ir.Null()},
		{"true", ir.FromBool(true)},
		{"false", ir.FromBool(false)},
		{"int8", ir.FromInt(5)},
		{"int8 min", ir.FromInt(math.MinInt8)},
		{"int16", ir.FromInt(300)},
		{"int32", ir.FromInt(70000)},
		{"int64", ir.FromInt(math.MaxInt64)},
		{"int64 min", ir.FromInt(math.MinInt64)},
		{"real", ir.FromFloat(1.5)},
		{"string", ir.FromString("c:1700000000:2345:1:99")},
		{"empty string", ir.FromString("")},
		{"array", ir.FromSlice([]*ir.Node{
			ir.FromString("query"),
			ir.FromString("/repo"),
			ir.Object().Field("fields", ir.FromSlice([]*ir.Node{ir.FromString("name")})),
		})},
		{"object", ir.Object().
			Field("version", ir.FromString("4.9.0")).
			Field("is_fresh_instance", ir.FromBool(true)).
			Field("files", ir.FromSlice(nil))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Marshal(tt.node)
			if err != nil {
				t.Fatal(err)
			}
			back, err := Unmarshal(d)
			if err != nil {
				t.Fatal(err)
			}
			if ir.Compare(tt.node, back) != 0 {
				t.Errorf("round trip mismatch")
			}
		})
	}
}

func TestBytesDecodeAsString(t *testing.T) {
	d, err := Marshal(ir.FromBytes([]byte("hello")))
	if err != nil {
		t.Fatal(err)
	}
	back, err := Unmarshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if back.Type != ir.StringType || back.String != "hello" {
		t.Errorf("got %s %q", back.Type, back.String)
	}
}

func TestIntWidths(t *testing.T) {
	tests := []struct {
		v     int64
		width byte
	}{
		{0, typeInt8},
		{127, typeInt8},
		{128, typeInt16},
		{-129, typeInt16},
		{32768, typeInt32},
		{1 << 40, typeInt64},
	}
	for _, tt := range tests {
		d, err := MarshalValue(ir.FromInt(tt.v))
		if err != nil {
			t.Fatal(err)
		}
		if d[0] != tt.width {
			t.Errorf("int %d encoded with type 0x%02x, want 0x%02x", tt.v, d[0], tt.width)
		}
	}
}

func TestDecodeStream(t *testing.T) {
	var buf bytes.Buffer
	first := ir.Object().Field("version", ir.FromString("4.9.0"))
	second := ir.Object().Field("clock", ir.FromString("c:1:2"))
	if err := Encode(first, &buf); err != nil {
		t.Fatal(err)
	}
	if err := Encode(second, &buf); err != nil {
		t.Fatal(err)
	}
	got1, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	got2, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if ir.Compare(first, got1) != 0 || ir.Compare(second, got2) != 0 {
		t.Error("stream decode mismatch")
	}
	if buf.Len() != 0 {
		t.Errorf("stream not fully consumed: %d bytes left", buf.Len())
	}
}

func TestTemplateExpansion(t *testing.T) {
	// template with keys ["name", "size"], two rows, second row skips size
	payload := []byte{typeTemplate}
	arr, err := MarshalValue(ir.FromSlice([]*ir.Node{
		ir.FromString("name"),
		ir.FromString("size"),
	}))
	if err != nil {
		t.Fatal(err)
	}
	payload = append(payload, arr...)
	payload = append(payload, typeInt8, 2)
	row1Name, _ := MarshalValue(ir.FromString("a.go"))
	row1Size, _ := MarshalValue(ir.FromInt(100))
	row2Name, _ := MarshalValue(ir.FromString("b.go"))
	payload = append(payload, row1Name...)
	payload = append(payload, row1Size...)
	payload = append(payload, row2Name...)
	payload = append(payload, typeSkip)

	node, err := UnmarshalValue(payload)
	if err != nil {
		t.Fatal(err)
	}
	want := ir.FromSlice([]*ir.Node{
		ir.Object().Field("name", ir.FromString("a.go")).Field("size", ir.FromInt(100)),
		ir.Object().Field("name", ir.FromString("b.go")),
	})
	if ir.Compare(node, want) != 0 {
		t.Errorf("template expansion mismatch")
	}
}

func TestDecodeErrors(t *testing.T) {
	good := MustMarshal(ir.FromString("abc"))

	t.Run("bad magic", func(t *testing.T) {
		bad := append([]byte{}, good...)
		bad[0] = 0xff
		_, err := Unmarshal(bad)
		if !errors.Is(err, ErrBadMagic) {
			t.Errorf("err = %v", err)
		}
	})
	t.Run("truncated", func(t *testing.T) {
		_, err := Unmarshal(good[:len(good)-2])
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("err = %v", err)
		}
	})
	t.Run("unknown type byte", func(t *testing.T) {
		_, err := UnmarshalValue([]byte{0x7f})
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("err = %v", err)
		}
		if !strings.Contains(de.Error(), "0x7f") {
			t.Errorf("error should name the type byte: %v", de)
		}
	})
	t.Run("trailing garbage", func(t *testing.T) {
		_, err := UnmarshalValue(append([]byte{typeNull}, 0x00))
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("err = %v", err)
		}
	})
	t.Run("length mismatch", func(t *testing.T) {
		bad := append([]byte{}, good...)
		bad[3]++ // bump declared length
		_, err := Unmarshal(bad)
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("err = %v", err)
		}
	})
	t.Run("huge string length", func(t *testing.T) {
		// string claiming a near-MaxInt64 length must not panic
		bad := []byte{typeString, typeInt64, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}
		_, err := UnmarshalValue(bad)
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("err = %v", err)
		}
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("err = %v, want truncation", err)
		}
	})
	t.Run("template keys not an array", func(t *testing.T) {
		bad := []byte{typeTemplate, typeInt8, 0x02}
		_, err := UnmarshalValue(bad)
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("err = %v", err)
		}
		if !strings.Contains(de.Error(), "array") {
			t.Errorf("error should name the expected type: %v", de)
		}
	})
}

func TestDecodeStreamHugeLength(t *testing.T) {
	// frame declaring a near-MaxInt64 payload must fail before allocating
	frame := []byte{0x00, 0x01, typeInt64, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}
	_, err := Decode(bytes.NewReader(frame))
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(de.Error(), "exceeds") {
		t.Errorf("error should report the length limit: %v", de)
	}
}

func TestEncodeErrors(t *testing.T) {
	badKey := &ir.Node{
		Type:   ir.ObjectType,
		Fields: []*ir.Node{ir.FromInt(1)},
		Values: []*ir.Node{ir.Null()},
	}
	if _, err := Marshal(badKey); err == nil {
		t.Error("non-string key should not encode")
	}
}
