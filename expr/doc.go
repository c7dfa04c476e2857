// Package expr builds query filter expression terms.
//
// An expression is a tree of terms evaluated by the service against each
// candidate file; this package only constructs the encoded form, it never
// evaluates anything. Every term satisfies pdu.Expr and plugs into the
// Expression field of a query, subscribe, or trigger request:
//
//	q := pdu.QueryRequestCommon{
//		Expression: expr.AllOf(
//			expr.Suffix("go"),
//			expr.Not(expr.Match("*_test.go")),
//			expr.Type(pdu.Regular),
//		),
//		Fields: []string{"name"},
//	}
//
// Name matching terms come in case sensitive and insensitive pairs
// (Match/IMatch, Name/IName, Pcre/IPcre, DirName/IDirName). The
// insensitive forms encode as separate term names rather than a flag.
package expr
