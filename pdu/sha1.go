package pdu

import (
	"github.com/watchman-go/watchman/ir"
)

type sha1Kind int

const (
	sha1Absent sha1Kind = iota
	sha1Hash
	sha1Error
)

// ContentSha1Hex reports the content SHA-1 hash for one file. Since
// computing the hash can fail, the value is a tri-state: the hex digest, the
// error that happened during hashing, or absent.
//
// Absent means the file was deleted before hashing could occur. That is
// distinct from the race where another process unlinks the file while the
// service believes it exists: that surfaces as the error variant.
type ContentSha1Hex struct {
	kind sha1Kind
	hash string
	err  string
}

// Sha1Hash constructs the digest variant.
func Sha1Hash(hexDigest string) ContentSha1Hex {
	return ContentSha1Hex{kind: sha1Hash, hash: hexDigest}
}

// Sha1Error constructs the error variant.
func Sha1Error(msg string) ContentSha1Hex {
	return ContentSha1Hex{kind: sha1Error, err: msg}
}

// Sha1Absent constructs the deleted-before-hashing variant. It is also the
// zero value.
func Sha1Absent() ContentSha1Hex {
	return ContentSha1Hex{}
}

// Hash returns the hex digest if this is the digest variant.
func (c ContentSha1Hex) Hash() (string, bool) {
	return c.hash, c.kind == sha1Hash
}

// Err returns the hashing error message if this is the error variant.
func (c ContentSha1Hex) Err() (string, bool) {
	return c.err, c.kind == sha1Error
}

// IsAbsent reports the deleted-before-hashing variant.
func (c ContentSha1Hex) IsAbsent() bool {
	return c.kind == sha1Absent
}

func (c ContentSha1Hex) ToIR() (*ir.Node, error) {
	switch c.kind {
	case sha1Hash:
		return ir.FromString(c.hash), nil
	case sha1Error:
		return ir.Object().Field("error", ir.FromString(c.err)), nil
	default:
		return ir.Null(), nil
	}
}

// FromIR resolves the shape by ordered attempts: plain string, then an
// object with an "error" string field, then null. Anything else fails.
func (c *ContentSha1Hex) FromIR(node *ir.Node) error {
	switch node.Type {
	case ir.StringType, ir.BytesType:
		*c = Sha1Hash(node.StringValue())
		return nil
	case ir.ObjectType:
		errNode := ir.Get(node, "error")
		if errNode == nil || (errNode.Type != ir.StringType && errNode.Type != ir.BytesType) {
			return &DecodeError{
				PDU: "ContentSha1Hex",
				Got: "Object",
				Msg: `object form requires an "error" string field`,
			}
		}
		*c = Sha1Error(errNode.StringValue())
		return nil
	case ir.NullType:
		*c = Sha1Absent()
		return nil
	default:
		return shapeErr("ContentSha1Hex", node)
	}
}
