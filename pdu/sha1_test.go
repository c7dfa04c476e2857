package pdu

import (
	"testing"

	"github.com/watchman-go/watchman/bser"
	"github.com/watchman-go/watchman/ir"
)

func TestContentSha1HexShapes(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
		want ContentSha1Hex
		fail bool
	}{
		{
			name: "hash",
			node: ir.FromString("da39a3ee5e6b4b0d3255bfef95601890afd80709"),
			want: Sha1Hash("da39a3ee5e6b4b0d3255bfef95601890afd80709"),
		},
		{
			name: "error",
			node: ir.Object().Field("error", ir.FromString("file vanished")),
			want: Sha1Error("file vanished"),
		},
		{
			name: "absent",
			node: ir.Null(),
			want: Sha1Absent(),
		},
		{
			name: "object without error field",
			node: ir.Object().Field("oops", ir.FromString("x")),
			fail: true,
		},
		{
			name: "object with non-string error",
			node: ir.Object().Field("error", ir.FromInt(2)),
			fail: true,
		},
		{
			name: "array",
			node: ir.FromSlice(nil),
			fail: true,
		},
		{
			name: "integer",
			node: ir.FromInt(7),
			fail: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ContentSha1Hex
			err := got.FromIR(tt.node)
			if tt.fail {
				if err == nil {
					t.Fatal("want a decode failure")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestContentSha1HexWireRoundTrip(t *testing.T) {
	for _, want := range []ContentSha1Hex{
		Sha1Hash("da39a3ee5e6b4b0d3255bfef95601890afd80709"),
		Sha1Error("open: permission denied"),
		Sha1Absent(),
	} {
		node, err := want.ToIR()
		if err != nil {
			t.Fatal(err)
		}
		d, err := bser.Marshal(node)
		if err != nil {
			t.Fatal(err)
		}
		back, err := bser.Unmarshal(d)
		if err != nil {
			t.Fatal(err)
		}
		var got ContentSha1Hex
		if err := got.FromIR(back); err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	}
}

func TestContentSha1HexAccessors(t *testing.T) {
	h := Sha1Hash("ff")
	if v, ok := h.Hash(); !ok || v != "ff" {
		t.Errorf("Hash() = %q, %v", v, ok)
	}
	if _, ok := h.Err(); ok {
		t.Error("hash variant should not report an error")
	}
	if h.IsAbsent() {
		t.Error("hash variant is not absent")
	}
	var zero ContentSha1Hex
	if !zero.IsAbsent() {
		t.Error("zero value should be absent")
	}
}
