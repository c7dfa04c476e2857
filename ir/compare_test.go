package ir

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		want int
	}{
		{"Null < Bool", Null(), FromBool(false), -1},
		{"Bool < Int", FromBool(true), FromInt(0), -1},
		{"Int < Real", FromInt(7), FromFloat(0.5), -1},
		{"Real < String", FromFloat(1.5), FromString(""), -1},
		{"String < Bytes", FromString("zzz"), FromBytes(nil), -1},
		{"Bytes < Array", FromBytes([]byte("a")), FromSlice(nil), -1},
		{"Array < Object", FromSlice(nil), Object(), -1},
		{"false < true", FromBool(false), FromBool(true), -1},
		{"int order", FromInt(-1), FromInt(1), -1},
		{"int equal", FromInt(42), FromInt(42), 0},
		{"real order", FromFloat(1.0), FromFloat(2.0), -1},
		{"string order", FromString("a"), FromString("b"), -1},
		{"bytes order", FromBytes([]byte("ab")), FromBytes([]byte("ac")), -1},
		{"nil node first", nil, Null(), -1},
		{
			"array by length",
			FromSlice([]*Node{FromInt(1)}),
			FromSlice([]*Node{FromInt(0), FromInt(0)}),
			-1,
		},
		{
			"array elementwise",
			FromSlice([]*Node{FromInt(1), FromInt(2)}),
			FromSlice([]*Node{FromInt(1), FromInt(3)}),
			-1,
		},
		{
			"object by key",
			Object().Field("a", FromInt(1)),
			Object().Field("b", FromInt(1)),
			-1,
		},
		{
			"object by value",
			Object().Field("a", FromInt(1)),
			Object().Field("a", FromInt(2)),
			-1,
		},
		{
			"object equal",
			Object().Field("a", FromInt(1)).Field("b", FromString("x")),
			Object().Field("a", FromInt(1)).Field("b", FromString("x")),
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("Compare() reversed = %d, want %d", got, -tt.want)
			}
		})
	}
}

func TestCompareClone(t *testing.T) {
	orig := Object().
		Field("version", FromString("2024.01.01")).
		Field("files", FromSlice([]*Node{FromString("a.go"), FromString("b.go")})).
		Field("is_fresh_instance", FromBool(true))
	clone := orig.Clone()
	if Compare(orig, clone) != 0 {
		t.Fatal("clone differs from original")
	}
	clone.Values[0].String = "other"
	if Compare(orig, clone) == 0 {
		t.Fatal("mutating clone affected comparison")
	}
}
