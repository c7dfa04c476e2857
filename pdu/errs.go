package pdu

import (
	"fmt"

	"github.com/watchman-go/watchman/ir"
)

// DecodeError reports a wire value that matches none of the shapes a PDU
// accepts.
type DecodeError struct {
	// PDU names the type being decoded, e.g. "Clock" or "FileType".
	PDU string

	// Got describes the shape actually seen.
	Got string

	Msg string
}

func (e *DecodeError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("pdu: decoding %s: %s", e.PDU, e.Msg)
	}
	return fmt.Sprintf("pdu: decoding %s: unexpected shape %s", e.PDU, e.Got)
}

func shapeErr(pdu string, node *ir.Node) *DecodeError {
	return &DecodeError{PDU: pdu, Got: node.Type.String()}
}

// ServerError is an error the service reported inside a response envelope.
// It is ordinary response data, distinguished from a malformed response.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "watchman: " + e.Message
}

// ResponseError inspects a decoded response envelope and returns a
// *ServerError if the service reported a command failure, nil otherwise.
func ResponseError(node *ir.Node) error {
	if node == nil || node.Type != ir.ObjectType {
		return nil
	}
	errNode := ir.Get(node, "error")
	if errNode == nil || errNode.Type == ir.NullType {
		return nil
	}
	return &ServerError{Message: errNode.StringValue()}
}
