package ir

import "errors"

var (
	errInternal = errors.New("internal error")

	ErrBadJSON = errors.New("bad json value")
)
