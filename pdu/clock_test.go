package pdu

import (
	"errors"
	"testing"

	"github.com/watchman-go/watchman/bser"
	"github.com/watchman-go/watchman/ir"
)

func TestClockSpecRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		spec ClockSpec
	}{
		{"null", NullClockSpec()},
		{"token", StringClock("c:1700000000:2345:1:99")},
		{"named cursor", NamedCursor("build")},
		{"timestamp", UnixTimestamp(1700000000)},
		{"zero value", ClockSpec{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := tt.spec.ToIR()
			if err != nil {
				t.Fatal(err)
			}
			var back ClockSpec
			if err := back.FromIR(node); err != nil {
				t.Fatal(err)
			}
			// the zero value and the explicit null clock are the same
			// specifier; both round trip to the null token
			want := tt.spec
			if tok, ok := want.Token(); ok {
				want = StringClock(tok)
			}
			if back != want {
				t.Errorf("got %+v, want %+v", back, want)
			}
		})
	}
}

func TestClockSpecVariants(t *testing.T) {
	if tok, ok := NullClockSpec().Token(); !ok || tok != NullClockToken {
		t.Errorf("null clock token = %q, %v", tok, ok)
	}
	if tok, ok := NamedCursor("sync").Token(); !ok || tok != "n:sync" {
		t.Errorf("cursor token = %q, %v", tok, ok)
	}
	ts := UnixTimestamp(42)
	if _, ok := ts.Token(); ok {
		t.Error("timestamp variant should not report a token")
	}
	if v, ok := ts.Timestamp(); !ok || v != 42 {
		t.Errorf("timestamp = %d, %v", v, ok)
	}
	if ts.String() != "42" {
		t.Errorf("String() = %q", ts.String())
	}
}

func TestClockSpecBadShape(t *testing.T) {
	var spec ClockSpec
	err := spec.FromIR(ir.FromBool(true))
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("got %v, want *DecodeError", err)
	}
	if derr.PDU != "ClockSpec" {
		t.Errorf("PDU = %q", derr.PDU)
	}
}

func TestClockScalarIsPlainVariant(t *testing.T) {
	// a bare scalar always resolves to the plain variant, even though the
	// scm-aware form also exists; only the object shape selects it
	var c Clock
	if err := c.FromIR(ir.FromString("c:123:4")); err != nil {
		t.Fatal(err)
	}
	if c.Scm != nil {
		t.Error("scalar input must not produce the scm-aware variant")
	}
	if tok, _ := c.Spec.Token(); tok != "c:123:4" {
		t.Errorf("token = %q", tok)
	}

	if err := c.FromIR(ir.FromInt(1700000000)); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Spec.Timestamp(); !ok || c.Scm != nil {
		t.Errorf("integer input should be a plain timestamp clock: %+v", c)
	}
}

func TestClockScmAware(t *testing.T) {
	node := ir.Object().
		Field("clock", ir.FromString("c:123:4")).
		Field("scm", ir.Object().
			Field("mergebase", ir.FromString("abcdef")).
			Field("mergebase-with", ir.FromString("main")).
			Field("saved-state", ir.Object().
				Field("storage", ir.FromString("local")).
				Field("commit-id", ir.FromString("abc123"))))

	var c Clock
	if err := c.FromIR(node); err != nil {
		t.Fatal(err)
	}
	if c.Scm == nil {
		t.Fatal("want the scm-aware variant")
	}
	if c.Scm.Mergebase != "abcdef" || c.Scm.MergebaseWith != "main" {
		t.Errorf("scm = %+v", c.Scm)
	}
	if c.Scm.SavedState == nil || c.Scm.SavedState.Storage != "local" ||
		c.Scm.SavedState.Commit != "abc123" {
		t.Errorf("saved state = %+v", c.Scm.SavedState)
	}

	back, err := c.ToIR()
	if err != nil {
		t.Fatal(err)
	}
	if back.Type != ir.ObjectType || ir.Get(back, "clock") == nil {
		t.Errorf("re-encode lost the object form: %v", back.Type)
	}
}

func TestClockObjectWithoutClockKey(t *testing.T) {
	var c Clock
	err := c.FromIR(ir.Object().Field("scm", ir.Object()))
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("got %v, want *DecodeError", err)
	}
}

func TestClockWireRoundTrip(t *testing.T) {
	want := Clock{
		Spec: StringClock("c:1:2:3"),
		Scm:  &ScmAwareClockData{Mergebase: "deadbeef"},
	}
	node, err := want.ToIR()
	if err != nil {
		t.Fatal(err)
	}
	d, err := bser.Marshal(node)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := bser.Unmarshal(d)
	if err != nil {
		t.Fatal(err)
	}
	var got Clock
	if err := got.FromIR(decoded); err != nil {
		t.Fatal(err)
	}
	if got.Spec != want.Spec || got.Scm == nil || *got.Scm != *want.Scm {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
