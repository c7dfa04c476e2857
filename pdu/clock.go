package pdu

import (
	"strconv"

	"github.com/watchman-go/watchman/gomap"
	"github.com/watchman-go/watchman/ir"
)

// NullClockToken is the fixed token representing a time before any observed
// change. A since query issued with it yields a fresh instance result
// containing all possible matches.
const NullClockToken = "c:0:0"

// ClockSpec is the fundamental clock specifier: either an opaque token
// string assigned by the server, or a legacy unix timestamp. The server
// never emits the timestamp variant; clients may send either. Token
// contents are opaque and expressly not a stable format: there is no
// defined way to reason about the relationship between two tokens.
//
// The zero value is the null clock.
type ClockSpec struct {
	token string
	ts    int64
	isTS  bool
}

// NullClockSpec constructs the null clock. Use it when starting from
// scratch without a saved clock value.
func NullClockSpec() ClockSpec {
	return ClockSpec{token: NullClockToken}
}

// StringClock constructs a spec from a token previously returned by the
// server.
func StringClock(token string) ClockSpec {
	return ClockSpec{token: token}
}

// NamedCursor constructs a named cursor spec ("n:" + cursor). The server
// maintains the cursor -> clock mapping, at the cost of an exclusive lock
// per query; prefer threading clocks from results instead.
func NamedCursor(cursor string) ClockSpec {
	return ClockSpec{token: "n:" + cursor}
}

// UnixTimestamp constructs the legacy timestamp spec. Its one second
// granularity tends to over-report events; it exists for compatibility.
func UnixTimestamp(timeT int64) ClockSpec {
	return ClockSpec{ts: timeT, isTS: true}
}

// Token returns the token string if this is the token variant.
func (c ClockSpec) Token() (string, bool) {
	if c.isTS {
		return "", false
	}
	if c.token == "" {
		return NullClockToken, true
	}
	return c.token, true
}

// Timestamp returns the unix timestamp if this is the timestamp variant.
func (c ClockSpec) Timestamp() (int64, bool) {
	return c.ts, c.isTS
}

func (c ClockSpec) String() string {
	if c.isTS {
		return strconv.FormatInt(c.ts, 10)
	}
	if c.token == "" {
		return NullClockToken
	}
	return c.token
}

// ToIR encodes the underlying representation unchanged: strings stay
// strings, timestamps stay integers.
func (c ClockSpec) ToIR() (*ir.Node, error) {
	if c.isTS {
		return ir.FromInt(c.ts), nil
	}
	tok := c.token
	if tok == "" {
		tok = NullClockToken
	}
	return ir.FromString(tok), nil
}

// FromIR resolves the shape by ordered attempts: string first, then signed
// integer.
func (c *ClockSpec) FromIR(node *ir.Node) error {
	switch node.Type {
	case ir.StringType, ir.BytesType:
		*c = StringClock(node.StringValue())
		return nil
	case ir.IntType:
		*c = UnixTimestamp(node.Int64)
		return nil
	default:
		return shapeErr("ClockSpec", node)
	}
}

// Clock refers to a logical point in the service's observed change history.
// It is either a plain ClockSpec, or a spec enriched with source-control
// metadata for scm-aware queries. Scm is nil for the plain variant.
//
// Thread the Clock from each query result into the next request's since
// field to receive a continuous delta of changes.
type Clock struct {
	Spec ClockSpec
	Scm  *ScmAwareClockData
}

// ScmAwareClockData carries source-control metadata attached to a clock.
type ScmAwareClockData struct {
	Mergebase     string               `bser:"field=mergebase,omitempty"`
	MergebaseWith string               `bser:"field=mergebase-with,omitempty"`
	SavedState    *SavedStateClockData `bser:"field=saved-state,omitempty"`
}

// SavedStateClockData describes externally stored, source-control-keyed
// snapshot metadata used to avoid full rescans across large revision jumps.
type SavedStateClockData struct {
	Storage string   `bser:"field=storage,omitempty"`
	Commit  string   `bser:"field=commit-id,omitempty"`
	Config  *ir.Node `bser:"field=config,omitempty"`
}

func (c Clock) ToIR() (*ir.Node, error) {
	specNode, err := c.Spec.ToIR()
	if err != nil {
		return nil, err
	}
	if c.Scm == nil {
		return specNode, nil
	}
	scmNode, err := gomap.ToIR(c.Scm)
	if err != nil {
		return nil, err
	}
	return ir.Object().
		Field("clock", specNode).
		Field("scm", scmNode), nil
}

// FromIR resolves the shape by ordered attempts: a bare scalar is always the
// plain spec variant; only an object with a "clock" key is the scm-aware
// variant. The two shapes are distinguished by top-level kind, never by
// heuristics, so a token that happens to look structured cannot
// mis-resolve.
func (c *Clock) FromIR(node *ir.Node) error {
	switch node.Type {
	case ir.StringType, ir.BytesType, ir.IntType:
		var spec ClockSpec
		if err := spec.FromIR(node); err != nil {
			return err
		}
		*c = Clock{Spec: spec}
		return nil
	case ir.ObjectType:
		clockNode := ir.Get(node, "clock")
		if clockNode == nil {
			return &DecodeError{
				PDU: "Clock",
				Got: "Object",
				Msg: `object form requires a "clock" field`,
			}
		}
		var spec ClockSpec
		if err := spec.FromIR(clockNode); err != nil {
			return err
		}
		res := Clock{Spec: spec}
		if scmNode := ir.Get(node, "scm"); scmNode != nil && scmNode.Type != ir.NullType {
			res.Scm = &ScmAwareClockData{}
			if err := gomap.FromIR(scmNode, res.Scm); err != nil {
				return err
			}
		}
		*c = res
		return nil
	default:
		return shapeErr("Clock", node)
	}
}
