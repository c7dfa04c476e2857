package gomap

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/watchman-go/watchman/ir"
)

// ToIRer is implemented by types that take over their own encoding.
type ToIRer interface {
	ToIR() (*ir.Node, error)
}

// FromIRer is implemented by types that take over their own decoding.
type FromIRer interface {
	FromIR(*ir.Node) error
}

var nodeType = reflect.TypeOf((*ir.Node)(nil))

// ToIR converts a Go value to an IR node.
// Types implementing ToIRer convert themselves; *ir.Node values pass
// through; everything else converts by reflection.
func ToIR(v interface{}) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	return toIRValue(reflect.ValueOf(v), "")
}

func toIRValue(val reflect.Value, fieldPath string) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}
	typ := val.Type()

	// opaque protocol values pass through
	if typ == nodeType {
		if val.IsNil() {
			return ir.Null(), nil
		}
		return val.Interface().(*ir.Node), nil
	}

	// nil pointers encode as null before any hook can run on them
	if (typ.Kind() == reflect.Ptr || typ.Kind() == reflect.Interface) && val.IsNil() {
		return ir.Null(), nil
	}

	// pointer-receiver hooks need an addressable value
	if typ.Kind() == reflect.Struct && !val.CanAddr() {
		p := reflect.New(typ)
		p.Elem().Set(val)
		val = p.Elem()
	}

	if node, ok, err := hookToIR(val); ok {
		if err != nil {
			return nil, &MarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
		}
		return node, nil
	}

	switch typ.Kind() {
	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return toIRValue(val.Elem(), fieldPath)
	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := val.Uint()
		if u > 1<<63-1 {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("uint value %d overflows the wire integer", u),
			}
		}
		return ir.FromInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil
	case reflect.String:
		return ir.FromString(val.String()), nil
	case reflect.Slice, reflect.Array:
		if typ.Kind() == reflect.Slice && typ.Elem().Kind() == reflect.Uint8 {
			return ir.FromBytes(val.Bytes()), nil
		}
		vals := make([]*ir.Node, val.Len())
		for i := 0; i < val.Len(); i++ {
			elt, err := toIRValue(val.Index(i), fmt.Sprintf("%s[%d]", fieldPath, i))
			if err != nil {
				return nil, err
			}
			vals[i] = elt
		}
		return ir.FromSlice(vals), nil
	case reflect.Map:
		if typ.Key().Kind() != reflect.String {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("map key must be string, got %s", typ.Key()),
			}
		}
		res := ir.Object()
		keys := val.MapKeys()
		sortStringValues(keys)
		for _, key := range keys {
			elt, err := toIRValue(val.MapIndex(key), fieldPath+"."+key.String())
			if err != nil {
				return nil, err
			}
			res.Field(key.String(), elt)
		}
		return res, nil
	case reflect.Struct:
		return structToIR(val, fieldPath)
	default:
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("cannot convert %s to IR", typ),
		}
	}
}

// hookToIR invokes a ToIR method if the value or its address has one.
func hookToIR(val reflect.Value) (*ir.Node, bool, error) {
	if m, ok := val.Interface().(ToIRer); ok {
		node, err := m.ToIR()
		return node, true, err
	}
	if val.CanAddr() {
		if m, ok := val.Addr().Interface().(ToIRer); ok {
			node, err := m.ToIR()
			return node, true, err
		}
	}
	return nil, false, nil
}

func structToIR(val reflect.Value, fieldPath string) (*ir.Node, error) {
	res := ir.Object()
	for _, info := range structFields(val.Type()) {
		fv := val.Field(info.Index)
		if info.OmitEmpty && isEmptyValue(fv) {
			continue
		}
		path := info.WireName
		if fieldPath != "" {
			path = fieldPath + "." + info.WireName
		}
		node, err := toIRValue(fv, path)
		if err != nil {
			return nil, err
		}
		res.Field(info.WireName, node)
	}
	return res, nil
}

// map iteration order is random; sort keys so encoding is deterministic
func sortStringValues(keys []reflect.Value) {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
}
