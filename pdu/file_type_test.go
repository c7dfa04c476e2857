package pdu

import (
	"errors"
	"testing"

	"github.com/watchman-go/watchman/ir"
)

func TestFileTypeRoundTrip(t *testing.T) {
	for _, ft := range FileTypes() {
		node, err := ft.ToIR()
		if err != nil {
			t.Fatal(err)
		}
		var back FileType
		if err := back.FromIR(node); err != nil {
			t.Fatalf("%s: %v", ft, err)
		}
		if back != ft {
			t.Errorf("got %s, want %s", back, ft)
		}
	}
}

func TestParseFileType(t *testing.T) {
	tests := []struct {
		code string
		want FileType
		fail bool
	}{
		{code: "d", want: Directory},
		{code: "f", want: Regular},
		{code: "l", want: Symlink},
		{code: "D", want: SolarisDoor},
		{code: "?", want: UnknownFileType},
		{code: "x", fail: true},
		{code: "", fail: true},
		{code: "df", fail: true},
	}
	for _, tt := range tests {
		got, err := ParseFileType(tt.code)
		if tt.fail {
			var derr *DecodeError
			if !errors.As(err, &derr) {
				t.Errorf("ParseFileType(%q): got %v, want *DecodeError", tt.code, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFileType(%q): %v", tt.code, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFileType(%q) = %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestFileTypeFromIRShape(t *testing.T) {
	var ft FileType
	if err := ft.FromIR(ir.FromInt(100)); err == nil {
		t.Error("decoding an integer should fail")
	}
	if err := ft.FromIR(ir.FromBytes([]byte("d"))); err != nil {
		t.Errorf("bytes-typed code should decode: %v", err)
	}
	if ft != Directory {
		t.Errorf("got %s, want %s", ft, Directory)
	}
}
