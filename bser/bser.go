package bser

const (
	typeArray    = 0x00
	typeObject   = 0x01
	typeString   = 0x02
	typeInt8     = 0x03
	typeInt16    = 0x04
	typeInt32    = 0x05
	typeInt64    = 0x06
	typeReal     = 0x07
	typeTrue     = 0x08
	typeFalse    = 0x09
	typeNull     = 0x0a
	typeTemplate = 0x0b
	typeSkip     = 0x0c
)

// magic is the v1 PDU header preceding the encoded payload length.
var magic = []byte{0x00, 0x01}

// maxPDULen bounds the declared payload length Decode will allocate for.
// Real responses stay far below this; anything larger is a corrupt frame.
const maxPDULen = 1 << 30
