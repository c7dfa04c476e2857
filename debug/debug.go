package debug

import (
	"os"
	"strconv"
)

type debug struct {
	PDU  bool
	Wire bool
}

var d *debug

func init() {
	d = &debug{}
	d.PDU = boolEnv("WATCHMAN_DEBUG_PDU")
	d.Wire = boolEnv("WATCHMAN_DEBUG_WIRE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// PDU reports whether request and response values should be logged as they
// are encoded and decoded.
func PDU() bool {
	return d.PDU
}

// Wire reports whether raw frame sizes and framing decisions should be
// logged.
func Wire() bool {
	return d.Wire
}
