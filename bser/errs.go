package bser

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated = errors.New("truncated input")
	ErrBadMagic  = errors.New("bad PDU magic")
)

// DecodeError reports a malformed BSER document and the byte offset at
// which decoding failed.
type DecodeError struct {
	Offset int
	Msg    string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bser: %s at offset %d: %v", e.Msg, e.Offset, e.Err)
	}
	return fmt.Sprintf("bser: %s at offset %d", e.Msg, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError reports a value that cannot be legally encoded.
type EncodeError struct {
	Msg string
}

func (e *EncodeError) Error() string {
	return "bser: " + e.Msg
}
