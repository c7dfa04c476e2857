package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	IntType
	RealType
	StringType
	BytesType
	ArrayType
	ObjectType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:   "Null",
		BoolType:   "Bool",
		IntType:    "Int",
		RealType:   "Real",
		StringType: "String",
		BytesType:  "Bytes",
		ArrayType:  "Array",
		ObjectType: "Object",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":   NullType,
		"Bool":   BoolType,
		"Int":    IntType,
		"Real":   RealType,
		"String": StringType,
		"Bytes":  BytesType,
		"Array":  ArrayType,
		"Object": ObjectType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		IntType,
		RealType,
		StringType,
		BytesType,
		ArrayType,
		ObjectType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, ObjectType:
		return false
	default:
		return true
	}
}

// IsScalar reports whether t is a non-composite, non-null kind.
func (t Type) IsScalar() bool {
	switch t {
	case BoolType, IntType, RealType, StringType, BytesType:
		return true
	default:
		return false
	}
}
