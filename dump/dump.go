// Package dump renders IR nodes as indented human-readable text, with
// optional terminal colors. It is a diagnostic surface: the output is for
// eyes, not for parsing, and its exact shape may change.
package dump

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/watchman-go/watchman/ir"
)

type Option func(*encState)

type encState struct {
	w      io.Writer
	colors *Colors
	indent int
}

// WithColors turns on colorized output.
func WithColors(c *Colors) Option {
	return func(es *encState) { es.colors = c }
}

// WithIndent sets the indent width. The default is two spaces.
func WithIndent(n int) Option {
	return func(es *encState) { es.indent = n }
}

// Write renders node to w.
func Write(w io.Writer, node *ir.Node, opts ...Option) error {
	es := &encState{w: w, indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if es.colors == nil {
		es.colors = &Colors{Default: colorDefault}
	}
	if err := es.encode(node, 0, true); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// MustString renders node without colors, panicking on a write error. It
// exists for log call sites where an error path would add nothing.
func MustString(node *ir.Node) string {
	buf := bytes.NewBuffer(nil)
	es := &encState{w: buf, indent: 2, colors: &Colors{Default: colorDefault}}
	if err := es.encode(node, 0, true); err != nil {
		panic(err)
	}
	return buf.String()
}

// encode writes node at the given indent depth. When inline is set the
// output cursor already sits where the first item belongs; otherwise each
// item opens on its own line.
func (es *encState) encode(node *ir.Node, depth int, inline bool) error {
	if node == nil {
		return es.scalar(ir.Null())
	}
	switch node.Type {
	case ir.ObjectType:
		return es.object(node, depth, inline)
	case ir.ArrayType:
		return es.array(node, depth, inline)
	default:
		return es.scalar(node)
	}
}

func (es *encState) object(node *ir.Node, depth int, inline bool) error {
	if len(node.Fields) == 0 {
		return es.write("{}")
	}
	for i := range node.Fields {
		if i > 0 || !inline {
			if err := es.newline(depth); err != nil {
				return err
			}
		}
		key := es.colors.Color(ir.ObjectType, FieldColor, node.Fields[i].String)
		sep := es.colors.Color(ir.ObjectType, SepColor, ":")
		if err := es.write(key + sep); err != nil {
			return err
		}
		val := node.Values[i]
		if isComposite(val) {
			if err := es.encode(val, depth+1, false); err != nil {
				return err
			}
			continue
		}
		if err := es.write(" "); err != nil {
			return err
		}
		if err := es.scalar(val); err != nil {
			return err
		}
	}
	return nil
}

func (es *encState) array(node *ir.Node, depth int, inline bool) error {
	if len(node.Values) == 0 {
		return es.write("[]")
	}
	for i, val := range node.Values {
		if i > 0 || !inline {
			if err := es.newline(depth); err != nil {
				return err
			}
		}
		dash := es.colors.Color(ir.ArrayType, SepColor, "-")
		if err := es.write(dash + " "); err != nil {
			return err
		}
		// composite elements continue on the dash line, indented past it
		if err := es.encode(val, depth+1, true); err != nil {
			return err
		}
	}
	return nil
}

func (es *encState) scalar(node *ir.Node) error {
	var text string
	switch node.Type {
	case ir.NullType:
		text = "null"
	case ir.BoolType:
		text = strconv.FormatBool(node.Bool)
	case ir.IntType:
		text = strconv.FormatInt(node.Int64, 10)
	case ir.RealType:
		text = strconv.FormatFloat(node.Float64, 'g', -1, 64)
	case ir.StringType:
		text = strconv.Quote(node.String)
	case ir.BytesType:
		text = strconv.Quote(string(node.Bytes))
	default:
		return fmt.Errorf("dump: cannot render type %s as a scalar", node.Type)
	}
	return es.write(es.colors.Color(node.Type, ValueColor, text))
}

func (es *encState) newline(depth int) error {
	return es.write("\n" + strings.Repeat(" ", depth*es.indent))
}

func (es *encState) write(s string) error {
	_, err := io.WriteString(es.w, s)
	return err
}

func isComposite(node *ir.Node) bool {
	if node == nil {
		return false
	}
	switch node.Type {
	case ir.ObjectType:
		return len(node.Fields) > 0
	case ir.ArrayType:
		return len(node.Values) > 0
	default:
		return false
	}
}
