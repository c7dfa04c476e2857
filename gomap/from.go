package gomap

import (
	"fmt"
	"reflect"

	"github.com/watchman-go/watchman/ir"
)

// FromIR converts an IR node to a Go value. v must be a non-nil pointer.
// Types implementing FromIRer convert themselves; fields of type *ir.Node
// receive the node unconverted; everything else converts by reflection.
//
// Unknown object keys on the wire are ignored.
func FromIR(node *ir.Node, v interface{}) error {
	if v == nil {
		return &UnmarshalError{Message: "destination value cannot be nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr {
		return &UnmarshalError{Message: "destination value must be a pointer"}
	}
	if val.IsNil() {
		return &UnmarshalError{Message: "destination pointer cannot be nil"}
	}
	return fromIRValue(node, val.Elem(), "")
}

func fromIRValue(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node == nil {
		return &UnmarshalError{FieldPath: fieldPath, Message: "IR node is nil"}
	}
	typ := val.Type()

	// opaque protocol values pass through
	if typ == nodeType {
		val.Set(reflect.ValueOf(node))
		return nil
	}

	if ok, err := hookFromIR(node, val); ok {
		if err != nil {
			return &UnmarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
		}
		return nil
	}

	switch typ.Kind() {
	case reflect.Ptr:
		if node.Type == ir.NullType {
			val.Set(reflect.Zero(typ))
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		return fromIRValue(node, val.Elem(), fieldPath)
	case reflect.Bool:
		if node.Type != ir.BoolType {
			return typeErr(fieldPath, "Bool", node)
		}
		val.SetBool(node.Bool)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if node.Type != ir.IntType {
			return typeErr(fieldPath, "Int", node)
		}
		if val.OverflowInt(node.Int64) {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("value %d overflows %s", node.Int64, typ),
			}
		}
		val.SetInt(node.Int64)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if node.Type != ir.IntType {
			return typeErr(fieldPath, "Int", node)
		}
		if node.Int64 < 0 || val.OverflowUint(uint64(node.Int64)) {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("value %d overflows %s", node.Int64, typ),
			}
		}
		val.SetUint(uint64(node.Int64))
		return nil
	case reflect.Float32, reflect.Float64:
		switch node.Type {
		case ir.RealType:
			val.SetFloat(node.Float64)
		case ir.IntType:
			val.SetFloat(float64(node.Int64))
		default:
			return typeErr(fieldPath, "Real", node)
		}
		return nil
	case reflect.String:
		if node.Type != ir.StringType && node.Type != ir.BytesType {
			return typeErr(fieldPath, "String", node)
		}
		val.SetString(node.StringValue())
		return nil
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			if node.Type != ir.StringType && node.Type != ir.BytesType {
				return typeErr(fieldPath, "Bytes", node)
			}
			val.SetBytes([]byte(node.StringValue()))
			return nil
		}
		if node.Type == ir.NullType {
			val.Set(reflect.Zero(typ))
			return nil
		}
		if node.Type != ir.ArrayType {
			return typeErr(fieldPath, "Array", node)
		}
		res := reflect.MakeSlice(typ, len(node.Values), len(node.Values))
		for i, elt := range node.Values {
			if err := fromIRValue(elt, res.Index(i), fmt.Sprintf("%s[%d]", fieldPath, i)); err != nil {
				return err
			}
		}
		val.Set(res)
		return nil
	case reflect.Map:
		if typ.Key().Kind() != reflect.String {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("map key must be string, got %s", typ.Key()),
			}
		}
		if node.Type == ir.NullType {
			val.Set(reflect.Zero(typ))
			return nil
		}
		if node.Type != ir.ObjectType {
			return typeErr(fieldPath, "Object", node)
		}
		res := reflect.MakeMapWithSize(typ, len(node.Fields))
		for i := range node.Fields {
			elt := reflect.New(typ.Elem()).Elem()
			key := node.Fields[i].String
			if err := fromIRValue(node.Values[i], elt, fieldPath+"."+key); err != nil {
				return err
			}
			res.SetMapIndex(reflect.ValueOf(key).Convert(typ.Key()), elt)
		}
		val.Set(res)
		return nil
	case reflect.Struct:
		return structFromIR(node, val, fieldPath)
	case reflect.Interface:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("cannot decode into interface type %s", typ),
		}
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("cannot decode into %s", typ),
		}
	}
}

func hookFromIR(node *ir.Node, val reflect.Value) (bool, error) {
	if val.CanAddr() {
		if m, ok := val.Addr().Interface().(FromIRer); ok {
			return true, m.FromIR(node)
		}
	}
	return false, nil
}

func structFromIR(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type != ir.ObjectType {
		return typeErr(fieldPath, "Object", node)
	}
	byKey := ir.ToMap(node)
	for _, info := range structFields(val.Type()) {
		if info.EncodeOnly {
			continue
		}
		elt, ok := byKey[info.WireName]
		if !ok {
			// absent fields keep their zero values
			continue
		}
		path := info.WireName
		if fieldPath != "" {
			path = fieldPath + "." + info.WireName
		}
		if err := fromIRValue(elt, val.Field(info.Index), path); err != nil {
			return err
		}
	}
	return nil
}

func typeErr(fieldPath, expected string, node *ir.Node) error {
	return &TypeError{
		FieldPath: fieldPath,
		Expected:  expected,
		Actual:    node.Type.String(),
	}
}
