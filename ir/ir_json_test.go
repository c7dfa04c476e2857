package ir

import "testing"

func TestJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		json string
	}{
		{"null", Null(), `null`},
		{"true", FromBool(true), `true`},
		{"int", FromInt(-42), `-42`},
		{"real", FromFloat(1.5), `1.5`},
		{"string", FromString("c:0:0"), `"c:0:0"`},
		{
			"array",
			FromSlice([]*Node{FromString("query"), FromString("/repo")}),
			`["query","/repo"]`,
		},
		{
			"object order preserved",
			Object().Field("b", FromInt(2)).Field("a", FromInt(1)),
			`{"b":2,"a":1}`,
		},
		{
			"nested",
			Object().Field("clock", Object().Field("scm", Null())),
			`{"clock":{"scm":null}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ToJSON(tt.node)
			if err != nil {
				t.Fatal(err)
			}
			if string(d) != tt.json {
				t.Errorf("ToJSON = %s, want %s", d, tt.json)
			}
			back, err := FromJSON(d)
			if err != nil {
				t.Fatal(err)
			}
			if Compare(tt.node, back) != 0 {
				t.Errorf("round trip mismatch: %s", d)
			}
		})
	}
}

func TestJSONBytesRenderAsString(t *testing.T) {
	d, err := ToJSON(FromBytes([]byte("name")))
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != `"name"` {
		t.Errorf("got %s", d)
	}
}

func TestFromJSONErrors(t *testing.T) {
	for _, bad := range []string{``, `{`, `[1,`, `1 2`, `{"a"}`} {
		if _, err := FromJSON([]byte(bad)); err == nil {
			t.Errorf("FromJSON(%q) should fail", bad)
		}
	}
}
