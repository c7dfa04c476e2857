package pdu

import (
	"fmt"

	"github.com/watchman-go/watchman/ir"
)

// FileType encodes the file type field returned in query results and used
// in expression terms. On the wire it is a single-character code.
type FileType byte

const (
	BlockSpecial    FileType = 'b'
	CharSpecial     FileType = 'c'
	Directory       FileType = 'd'
	Regular         FileType = 'f'
	Fifo            FileType = 'p'
	Symlink         FileType = 'l'
	Socket          FileType = 's'
	SolarisDoor     FileType = 'D'
	UnknownFileType FileType = '?'
)

func FileTypes() []FileType {
	return []FileType{
		BlockSpecial,
		CharSpecial,
		Directory,
		Regular,
		Fifo,
		Symlink,
		Socket,
		SolarisDoor,
		UnknownFileType,
	}
}

// ParseFileType maps a single-character wire code to its kind. A code
// outside the known set is a protocol violation reported as a *DecodeError:
// a caller processing records from a newer server can skip or report the one
// bad record rather than terminate.
func ParseFileType(code string) (FileType, error) {
	if len(code) == 1 {
		t := FileType(code[0])
		switch t {
		case BlockSpecial, CharSpecial, Directory, Regular,
			Fifo, Symlink, Socket, SolarisDoor, UnknownFileType:
			return t, nil
		}
	}
	return 0, &DecodeError{
		PDU: "FileType",
		Got: "String",
		Msg: fmt.Sprintf("unknown file type code %q", code),
	}
}

func (t FileType) String() string {
	return string(byte(t))
}

func (t FileType) ToIR() (*ir.Node, error) {
	return ir.FromString(t.String()), nil
}

func (t *FileType) FromIR(node *ir.Node) error {
	if node.Type != ir.StringType && node.Type != ir.BytesType {
		return shapeErr("FileType", node)
	}
	parsed, err := ParseFileType(node.StringValue())
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
