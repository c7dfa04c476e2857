package expr

import (
	"github.com/watchman-go/watchman/ir"
	"github.com/watchman-go/watchman/pdu"
)

// literal covers the terms that encode as a bare string.
type literal string

func (l literal) ToIR() (*ir.Node, error) {
	return ir.FromString(string(l)), nil
}

// True matches every file.
func True() pdu.Expr { return literal("true") }

// False matches no file.
func False() pdu.Expr { return literal("false") }

// Empty matches zero-length files and directories with no entries.
func Empty() pdu.Expr { return literal("empty") }

// Exists matches files that currently exist.
func Exists() pdu.Expr { return literal("exists") }

type not struct{ term pdu.Expr }

// Not inverts a term.
func Not(term pdu.Expr) pdu.Expr { return not{term} }

func (n not) ToIR() (*ir.Node, error) {
	inner, err := n.term.ToIR()
	if err != nil {
		return nil, err
	}
	return ir.FromSlice([]*ir.Node{ir.FromString("not"), inner}), nil
}

type compound struct {
	op    string
	terms []pdu.Expr
}

// AllOf matches when every child term matches.
func AllOf(terms ...pdu.Expr) pdu.Expr { return compound{"allof", terms} }

// AnyOf matches when at least one child term matches.
func AnyOf(terms ...pdu.Expr) pdu.Expr { return compound{"anyof", terms} }

func (c compound) ToIR() (*ir.Node, error) {
	nodes := make([]*ir.Node, 0, len(c.terms)+1)
	nodes = append(nodes, ir.FromString(c.op))
	for _, term := range c.terms {
		n, err := term.ToIR()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return ir.FromSlice(nodes), nil
}

// Rel is a relational operator used by depth and size comparisons.
type Rel string

const (
	Eq Rel = "eq"
	Ne Rel = "ne"
	Gt Rel = "gt"
	Ge Rel = "ge"
	Lt Rel = "lt"
	Le Rel = "le"
)

// DirNameTerm matches files contained within a directory.
type DirNameTerm struct {
	op    string
	path  string
	rel   Rel
	depth int64
	bound bool
}

// DirName matches files at any depth under path.
func DirName(path string) DirNameTerm {
	return DirNameTerm{op: "dirname", path: path}
}

// IDirName is DirName with case insensitive path comparison.
func IDirName(path string) DirNameTerm {
	return DirNameTerm{op: "idirname", path: path}
}

// WithDepth constrains how far below path a file may sit. Depth 0 is a
// direct child of path.
func (d DirNameTerm) WithDepth(rel Rel, depth int64) DirNameTerm {
	d.rel, d.depth, d.bound = rel, depth, true
	return d
}

func (d DirNameTerm) ToIR() (*ir.Node, error) {
	nodes := []*ir.Node{ir.FromString(d.op), ir.FromString(d.path)}
	if d.bound {
		nodes = append(nodes, ir.FromSlice([]*ir.Node{
			ir.FromString("depth"),
			ir.FromString(string(d.rel)),
			ir.FromInt(d.depth),
		}))
	}
	return ir.FromSlice(nodes), nil
}

// MatchTerm matches the file name against a glob pattern. By default the
// pattern applies to the basename.
type MatchTerm struct {
	op   string
	glob string

	wholename       bool
	includeDotfiles bool
	noEscape        bool
}

// Match matches glob against the basename.
func Match(glob string) MatchTerm {
	return MatchTerm{op: "match", glob: glob}
}

// IMatch is Match with case insensitive comparison.
func IMatch(glob string) MatchTerm {
	return MatchTerm{op: "imatch", glob: glob}
}

// Wholename applies the pattern to the root-relative path instead of the
// basename.
func (m MatchTerm) Wholename() MatchTerm {
	m.wholename = true
	return m
}

// IncludeDotfiles lets the pattern match names starting with a dot.
func (m MatchTerm) IncludeDotfiles() MatchTerm {
	m.includeDotfiles = true
	return m
}

// NoEscape treats backslash in the pattern as a literal character.
func (m MatchTerm) NoEscape() MatchTerm {
	m.noEscape = true
	return m
}

func (m MatchTerm) ToIR() (*ir.Node, error) {
	nodes := []*ir.Node{
		ir.FromString(m.op),
		ir.FromString(m.glob),
		ir.FromString(scope(m.wholename)),
	}
	if m.includeDotfiles || m.noEscape {
		flags := ir.Object()
		if m.includeDotfiles {
			flags.Field("includedotfiles", ir.FromBool(true))
		}
		if m.noEscape {
			flags.Field("noescape", ir.FromBool(true))
		}
		nodes = append(nodes, flags)
	}
	return ir.FromSlice(nodes), nil
}

// NameTerm matches the file name exactly against one or more candidates.
type NameTerm struct {
	op        string
	names     []string
	wholename bool
}

// Name matches the basename against any of the given names.
func Name(names ...string) NameTerm {
	return NameTerm{op: "name", names: names}
}

// IName is Name with case insensitive comparison.
func IName(names ...string) NameTerm {
	return NameTerm{op: "iname", names: names}
}

// Wholename compares against the root-relative path instead of the
// basename.
func (n NameTerm) Wholename() NameTerm {
	n.wholename = true
	return n
}

func (n NameTerm) ToIR() (*ir.Node, error) {
	var arg *ir.Node
	if len(n.names) == 1 {
		arg = ir.FromString(n.names[0])
	} else {
		vals := make([]*ir.Node, len(n.names))
		for i, name := range n.names {
			vals[i] = ir.FromString(name)
		}
		arg = ir.FromSlice(vals)
	}
	return ir.FromSlice([]*ir.Node{
		ir.FromString(n.op),
		arg,
		ir.FromString(scope(n.wholename)),
	}), nil
}

// PcreTerm matches the file name against a regular expression.
type PcreTerm struct {
	op        string
	pattern   string
	wholename bool
}

// Pcre matches the basename against pattern.
func Pcre(pattern string) PcreTerm {
	return PcreTerm{op: "pcre", pattern: pattern}
}

// IPcre is Pcre with case insensitive comparison.
func IPcre(pattern string) PcreTerm {
	return PcreTerm{op: "ipcre", pattern: pattern}
}

// Wholename matches against the root-relative path instead of the
// basename.
func (p PcreTerm) Wholename() PcreTerm {
	p.wholename = true
	return p
}

func (p PcreTerm) ToIR() (*ir.Node, error) {
	return ir.FromSlice([]*ir.Node{
		ir.FromString(p.op),
		ir.FromString(p.pattern),
		ir.FromString(scope(p.wholename)),
	}), nil
}

// SinceTerm matches files changed after a reference point.
type SinceTerm struct {
	spec  pdu.ClockSpec
	field string
}

// Since matches files whose observed clock is newer than spec.
func Since(spec pdu.ClockSpec) SinceTerm {
	return SinceTerm{spec: spec}
}

// SinceMtime matches files modified after the given unix time.
func SinceMtime(timeT int64) SinceTerm {
	return SinceTerm{spec: pdu.UnixTimestamp(timeT), field: "mtime"}
}

// SinceCtime matches files whose status changed after the given unix time.
func SinceCtime(timeT int64) SinceTerm {
	return SinceTerm{spec: pdu.UnixTimestamp(timeT), field: "ctime"}
}

func (s SinceTerm) ToIR() (*ir.Node, error) {
	specNode, err := s.spec.ToIR()
	if err != nil {
		return nil, err
	}
	nodes := []*ir.Node{ir.FromString("since"), specNode}
	if s.field != "" {
		nodes = append(nodes, ir.FromString(s.field))
	}
	return ir.FromSlice(nodes), nil
}

// SizeTerm compares the file size in bytes.
type SizeTerm struct {
	rel   Rel
	bytes int64
}

// Size matches files whose size satisfies the relation.
func Size(rel Rel, bytes int64) SizeTerm {
	return SizeTerm{rel: rel, bytes: bytes}
}

func (s SizeTerm) ToIR() (*ir.Node, error) {
	return ir.FromSlice([]*ir.Node{
		ir.FromString("size"),
		ir.FromString(string(s.rel)),
		ir.FromInt(s.bytes),
	}), nil
}

// SuffixTerm matches the file name extension, case insensitively.
type SuffixTerm struct {
	suffixes []string
}

// Suffix matches files whose name ends in "." plus any of the given
// suffixes.
func Suffix(suffixes ...string) SuffixTerm {
	return SuffixTerm{suffixes: suffixes}
}

func (s SuffixTerm) ToIR() (*ir.Node, error) {
	var arg *ir.Node
	if len(s.suffixes) == 1 {
		arg = ir.FromString(s.suffixes[0])
	} else {
		vals := make([]*ir.Node, len(s.suffixes))
		for i, suffix := range s.suffixes {
			vals[i] = ir.FromString(suffix)
		}
		arg = ir.FromSlice(vals)
	}
	return ir.FromSlice([]*ir.Node{ir.FromString("suffix"), arg}), nil
}

// TypeTerm matches the file type.
type TypeTerm struct {
	t pdu.FileType
}

// Type matches files of the given type.
func Type(t pdu.FileType) TypeTerm {
	return TypeTerm{t}
}

func (t TypeTerm) ToIR() (*ir.Node, error) {
	code, err := t.t.ToIR()
	if err != nil {
		return nil, err
	}
	return ir.FromSlice([]*ir.Node{ir.FromString("type"), code}), nil
}

func scope(wholename bool) string {
	if wholename {
		return "wholename"
	}
	return "basename"
}
