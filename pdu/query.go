package pdu

import (
	"time"

	"github.com/watchman-go/watchman/gomap"
	"github.com/watchman-go/watchman/ir"
)

// Expr is a query filter expression. It serializes as a nested value and is
// otherwise opaque to this layer; evaluation is a server concern. Package
// expr provides the standard term vocabulary.
type Expr interface {
	ToIR() (*ir.Node, error)
}

// PathGeneratorElement is one entry of the path generator: a directory
// walked recursively, or constrained to a given depth.
type PathGeneratorElement struct {
	path        string
	depth       int64
	constrained bool
}

// RecursivePath examines path with unbounded recursion.
func RecursivePath(path string) PathGeneratorElement {
	return PathGeneratorElement{path: path}
}

// PathWithDepth examines path descending at most depth levels; depth 0
// means the path itself only.
func PathWithDepth(path string, depth int64) PathGeneratorElement {
	return PathGeneratorElement{path: path, depth: depth, constrained: true}
}

func (p PathGeneratorElement) ToIR() (*ir.Node, error) {
	if !p.constrained {
		return ir.FromString(p.path), nil
	}
	return ir.Object().
		Field("path", ir.FromString(p.path)).
		Field("depth", ir.FromInt(p.depth)), nil
}

// QueryRequestCommon is the query configuration aggregate.
//
// A query runs in three phases: candidate generation, filtration through
// the expression, and result rendering of the requested fields. The glob,
// path, suffix and since generators are independent and may be combined,
// in which case the server unions their candidate sets; with no generator
// set the server enumerates all known files.
//
// Every boolean toggle defaults to false and is omitted from the wire when
// false: some servers treat key presence as an override signal.
type QueryRequestCommon struct {
	// Glob, when set, enables the glob generator. Matching obeys
	// GlobNoEscape (backslash is literal, not an escape) and
	// GlobIncludeDotfiles (include basenames starting with dot).
	Glob                []string
	GlobNoEscape        bool
	GlobIncludeDotfiles bool

	// Path enables the path generator.
	Path []PathGeneratorElement

	// Suffix enables the suffix generator. On virtualized filesystems this
	// can be an O(project) walk; scope it to a shallow subdirectory.
	Suffix []string

	// Since enables the since generator, delivering the delta of changes
	// after the given clock. Thread QueryResult.Clock back here.
	Since *Clock

	// RelativeRoot makes all input paths relative to this subdirectory of
	// the project, and all returned names relative to it as well.
	RelativeRoot string

	// Expression filters the candidates produced by the generators. Nil
	// means all candidates pass.
	Expression Expr

	// Fields selects the per-file fields rendered into each result row.
	// "name" is the cheapest and should be considered required. Prefer
	// "content.sha1hex" and "type" over "size" and "mode" to avoid
	// materializing inodes in virtualized filesystems.
	Fields []string

	// EmptyOnFreshInstance asserts the caller deals with fresh instance
	// results correctly and wants them delivered empty.
	EmptyOnFreshInstance bool

	// OmitChangedFiles skips querying and returning the changed files;
	// useful when only the saved-state payload is of interest.
	OmitChangedFiles bool

	// FailIfNoSavedState turns a missing saved state on mergebase change
	// into a query error instead of a potentially huge normal since result.
	FailIfNoSavedState bool

	// CaseSensitive treats names as case sensitive even on filesystems
	// that appear otherwise.
	CaseSensitive bool

	// SyncTimeout overrides the cookie synchronization timeout; see the
	// SyncTimeout type. Absence of this field means "server default" in
	// this context.
	SyncTimeout SyncTimeout

	SettlePeriod  SettleDurationMs
	SettleTimeout SettleDurationMs

	// DedupResults deduplicates by filename when combining generators, at
	// an O(result-size) memory cost.
	DedupResults bool

	// LockTimeout bounds how long the server waits for a lock on the
	// filesystem view. Zero keeps the server default.
	LockTimeout time.Duration

	// RequestID tags the request in the server's performance samples and
	// is exported to spawned source-control child processes.
	RequestID string

	// AlwaysIncludeDirectories guarantees events for directories, which
	// are otherwise skipped on some virtualized repos across commit
	// transitions.
	AlwaysIncludeDirectories bool
}

// ToIR builds the configuration object, enforcing the omit-if-default rule
// field by field. Fields is always present, even when empty: result rows
// depend on it structurally.
func (q *QueryRequestCommon) ToIR() (*ir.Node, error) {
	obj := ir.Object()
	if len(q.Glob) > 0 {
		obj.Field("glob", stringList(q.Glob))
	}
	if q.GlobNoEscape {
		obj.Field("glob_noescape", ir.FromBool(true))
	}
	if q.GlobIncludeDotfiles {
		obj.Field("glob_includedotfiles", ir.FromBool(true))
	}
	if len(q.Path) > 0 {
		elems := make([]*ir.Node, len(q.Path))
		for i, p := range q.Path {
			elt, err := p.ToIR()
			if err != nil {
				return nil, err
			}
			elems[i] = elt
		}
		obj.Field("path", ir.FromSlice(elems))
	}
	if len(q.Suffix) > 0 {
		obj.Field("suffix", stringList(q.Suffix))
	}
	if q.Since != nil {
		since, err := q.Since.ToIR()
		if err != nil {
			return nil, err
		}
		obj.Field("since", since)
	}
	if q.RelativeRoot != "" {
		obj.Field("relative_root", ir.FromString(q.RelativeRoot))
	}
	if q.Expression != nil {
		expr, err := q.Expression.ToIR()
		if err != nil {
			return nil, err
		}
		obj.Field("expression", expr)
	}
	obj.Field("fields", stringList(q.Fields))
	if q.EmptyOnFreshInstance {
		obj.Field("empty_on_fresh_instance", ir.FromBool(true))
	}
	if q.OmitChangedFiles {
		obj.Field("omit_changed_files", ir.FromBool(true))
	}
	if q.FailIfNoSavedState {
		obj.Field("fail_if_no_saved_state", ir.FromBool(true))
	}
	if q.CaseSensitive {
		obj.Field("case_sensitive", ir.FromBool(true))
	}
	addSyncTimeoutQuery(obj, q.SyncTimeout)
	if q.SettlePeriod != 0 {
		obj.Field("settle_period", ir.FromInt(time.Duration(q.SettlePeriod).Milliseconds()))
	}
	if q.SettleTimeout != 0 {
		obj.Field("settle_timeout", ir.FromInt(time.Duration(q.SettleTimeout).Milliseconds()))
	}
	if q.DedupResults {
		obj.Field("dedup_results", ir.FromBool(true))
	}
	if q.LockTimeout != 0 {
		obj.Field("lock_timeout", ir.FromInt(q.LockTimeout.Milliseconds()))
	}
	if q.RequestID != "" {
		obj.Field("request_id", ir.FromString(q.RequestID))
	}
	if q.AlwaysIncludeDirectories {
		obj.Field("always_include_directories", ir.FromBool(true))
	}
	return obj, nil
}

// QueryRequest is the "query" command envelope.
type QueryRequest struct {
	Root   string
	Params QueryRequestCommon
}

func (q *QueryRequest) ToIR() (*ir.Node, error) {
	params, err := q.Params.ToIR()
	if err != nil {
		return nil, err
	}
	return command("query", ir.FromString(q.Root), params), nil
}

// QueryDebugInfo carries diagnostic output requested from the server.
type QueryDebugInfo struct {
	CookieFiles []string `bser:"field=cookie_files,omitempty"`
}

// QueryResult holds the outcome of a query, generic over the caller's
// result-row type F. F should carry a bser-tagged field for each name in
// the request's Fields list.
//
// If IsFreshInstance is set, this result is the total set of possible
// matches and the caller MUST forget any file not present in Files, or its
// state diverges. Otherwise the result is a delta since the request's
// since clock.
type QueryResult[F any] struct {
	Version         string   `bser:"field=version"`
	IsFreshInstance bool     `bser:"field=is_fresh_instance"`
	Files           []F      `bser:"field=files,omitempty"`
	Clock           Clock    `bser:"field=clock"`
	StateEnter      string   `bser:"field=state-enter,omitempty"`
	StateLeave      string   `bser:"field=state-leave,omitempty"`
	StateMetadata   *ir.Node `bser:"field=metadata,omitempty"`

	// SavedStateInfo holds storage-engine metadata for source-control
	// aware queries with saved-state configuration.
	SavedStateInfo *ir.Node        `bser:"field=saved-state-info,omitempty"`
	Debug          *QueryDebugInfo `bser:"field=debug,omitempty"`
}

// DecodeQueryResult decodes a query response envelope, reporting a
// *ServerError if the service rejected the query.
func DecodeQueryResult[F any](node *ir.Node) (*QueryResult[F], error) {
	if err := ResponseError(node); err != nil {
		return nil, err
	}
	res := &QueryResult[F]{}
	if err := gomap.FromIR(node, res); err != nil {
		return nil, err
	}
	return res, nil
}

// NameOnly is a minimal result-row type selecting just the file name.
type NameOnly struct {
	Name string `bser:"field=name"`
}

// FileDetails is a general-purpose result-row type covering the commonly
// requested fields. Request only the fields the row actually needs; the
// rest stay at their zero values.
type FileDetails struct {
	Name   string `bser:"field=name"`
	Exists bool   `bser:"field=exists"`

	Size  int64    `bser:"field=size,omitempty"`
	Mode  int64    `bser:"field=mode,omitempty"`
	Mtime int64    `bser:"field=mtime,omitempty"`
	Type  FileType `bser:"field=type,omitempty"`

	ContentSha1Hex ContentSha1Hex `bser:"field=content.sha1hex"`

	// Oclock is the observed clock of the most recent change.
	Oclock ClockSpec `bser:"field=oclock"`
}

func stringList(vs []string) *ir.Node {
	nodes := make([]*ir.Node, len(vs))
	for i, v := range vs {
		nodes[i] = ir.FromString(v)
	}
	return ir.FromSlice(nodes)
}

// command builds a request envelope: the command name followed by its
// positional arguments.
func command(name string, args ...*ir.Node) *ir.Node {
	elems := make([]*ir.Node, 0, len(args)+1)
	elems = append(elems, ir.FromString(name))
	elems = append(elems, args...)
	return ir.FromSlice(elems)
}
