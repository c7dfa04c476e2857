package pdu

import (
	"github.com/watchman-go/watchman/ir"
)

// SubscribeRequest configures a live subscription. It is a narrowed
// QueryRequestCommon: generators other than since make little sense for a
// stream of deltas, so only the filtering and rendering knobs appear.
type SubscribeRequest struct {
	// Since positions the subscription; updates older than this clock are
	// not delivered.
	Since *Clock

	RelativeRoot string
	Expression   Expr
	Fields       []string

	EmptyOnFreshInstance bool
	CaseSensitive        bool

	// DeferVCS holds notifications while interactive source-control
	// operations (rebase, merge) are in progress. On by default in the
	// service; setting it here makes the request explicit.
	DeferVCS bool

	// Defer holds notification delivery while any of the named states are
	// asserted, then releases the buffered updates.
	Defer []string

	// Drop discards updates generated while any of the named states are
	// asserted; on release the subscription resumes from the current view.
	Drop []string
}

func (s *SubscribeRequest) ToIR() (*ir.Node, error) {
	obj := ir.Object()
	if s.Since != nil {
		since, err := s.Since.ToIR()
		if err != nil {
			return nil, err
		}
		obj.Field("since", since)
	}
	if s.RelativeRoot != "" {
		obj.Field("relative_root", ir.FromString(s.RelativeRoot))
	}
	if s.Expression != nil {
		expr, err := s.Expression.ToIR()
		if err != nil {
			return nil, err
		}
		obj.Field("expression", expr)
	}
	obj.Field("fields", stringList(s.Fields))
	if s.EmptyOnFreshInstance {
		obj.Field("empty_on_fresh_instance", ir.FromBool(true))
	}
	if s.CaseSensitive {
		obj.Field("case_sensitive", ir.FromBool(true))
	}
	if s.DeferVCS {
		obj.Field("defer_vcs", ir.FromBool(true))
	}
	if len(s.Defer) > 0 {
		obj.Field("defer", stringList(s.Defer))
	}
	if len(s.Drop) > 0 {
		obj.Field("drop", stringList(s.Drop))
	}
	return obj, nil
}

// SubscribeCommand is the "subscribe" envelope: root, subscription name,
// then the request parameters.
type SubscribeCommand struct {
	Root   string
	Name   string
	Params SubscribeRequest
}

func (s *SubscribeCommand) ToIR() (*ir.Node, error) {
	params, err := s.Params.ToIR()
	if err != nil {
		return nil, err
	}
	return command("subscribe", ir.FromString(s.Root), ir.FromString(s.Name), params), nil
}

// SubscribeResponse acknowledges a subscription. Unilateral updates then
// arrive as query results tagged with the subscription name.
type SubscribeResponse struct {
	Version   string `bser:"field=version"`
	Subscribe string `bser:"field=subscribe"`
	Clock     Clock  `bser:"field=clock"`

	// AssertedStates lists states already asserted at subscription time,
	// so the client need not wait for enter notifications it already
	// missed.
	AssertedStates []string `bser:"field=asserted-states,omitempty"`
	SavedStateInfo *ir.Node `bser:"field=saved-state-info,omitempty"`
}

// Unsubscribe is the "unsubscribe" envelope.
type Unsubscribe struct {
	Root string
	Name string
}

func (u *Unsubscribe) ToIR() (*ir.Node, error) {
	return command("unsubscribe", ir.FromString(u.Root), ir.FromString(u.Name)), nil
}

type UnsubscribeResponse struct {
	Version     string `bser:"field=version"`
	Unsubscribe string `bser:"field=unsubscribe"`
}
