package dump

import (
	"bytes"
	"testing"

	"github.com/watchman-go/watchman/ir"
)

func TestWrite(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
		want string
	}{
		{"null", ir.Null(), "null\n"},
		{"string", ir.FromString("c:1:2"), "\"c:1:2\"\n"},
		{"empty object", ir.Object(), "{}\n"},
		{"empty array", ir.FromSlice(nil), "[]\n"},
		{
			"flat object",
			ir.Object().
				Field("version", ir.FromString("4.9.0")).
				Field("is_fresh_instance", ir.FromBool(true)),
			"version: \"4.9.0\"\nis_fresh_instance: true\n",
		},
		{
			"nested",
			ir.Object().
				Field("clock", ir.FromString("c:1:2")).
				Field("files", ir.FromSlice([]*ir.Node{
					ir.Object().
						Field("name", ir.FromString("a.go")).
						Field("size", ir.FromInt(12)),
					ir.Object().
						Field("name", ir.FromString("b.go")),
				})),
			"clock: \"c:1:2\"\n" +
				"files:\n" +
				"  - name: \"a.go\"\n" +
				"    size: 12\n" +
				"  - name: \"b.go\"\n",
		},
		{
			"envelope",
			ir.FromSlice([]*ir.Node{
				ir.FromString("query"),
				ir.FromString("/repo"),
				ir.Object().Field("fields", ir.FromSlice([]*ir.Node{
					ir.FromString("name"),
				})),
			}),
			"- \"query\"\n" +
				"- \"/repo\"\n" +
				"- fields:\n" +
				"    - \"name\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			if err := Write(buf, tt.node); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got:\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestMustString(t *testing.T) {
	got := MustString(ir.Object().Field("a", ir.FromInt(1)))
	if got != "a: 1" {
		t.Errorf("got %q", got)
	}
}
