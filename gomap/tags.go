package gomap

import (
	"reflect"
	"strings"
)

// fieldInfo holds field metadata extracted from `bser:"..."` struct tags.
type fieldInfo struct {
	// Index is the field index within the struct.
	Index int

	// Name is the Go struct field name.
	Name string

	// WireName is the object key on the wire (field= tag or the Go name).
	WireName string

	// OmitEmpty skips the field when encoding its zero value.
	OmitEmpty bool

	// EncodeOnly marks fields that serialize but are never populated on
	// decode (the trigger stdin rule).
	EncodeOnly bool

	// Skip drops the field from both directions.
	Skip bool
}

// parseFieldTag parses one field's `bser` tag. Entries are comma separated:
// field=NAME, omitempty, encodeonly, or the single entry "-".
func parseFieldTag(field reflect.StructField) fieldInfo {
	info := fieldInfo{
		Name:     field.Name,
		WireName: field.Name,
	}
	tag := field.Tag.Get("bser")
	if tag == "" {
		return info
	}
	if tag == "-" {
		info.Skip = true
		return info
	}
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "omitempty":
			info.OmitEmpty = true
		case part == "encodeonly":
			info.EncodeOnly = true
		case strings.HasPrefix(part, "field="):
			name := strings.TrimPrefix(part, "field=")
			if name != "" {
				info.WireName = name
			}
		}
	}
	return info
}

// structFields returns the usable fields of a struct type in declaration
// order, skipping unexported and tag-skipped fields.
func structFields(typ reflect.Type) []fieldInfo {
	fields := make([]fieldInfo, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		info := parseFieldTag(field)
		if info.Skip {
			continue
		}
		info.Index = i
		fields = append(fields, info)
	}
	return fields
}

// isEmptyValue reports whether v is the zero value for omitempty purposes.
// Struct types are never empty unless they implement IsZero.
func isEmptyValue(v reflect.Value) bool {
	if v.Kind() == reflect.Struct && v.CanInterface() {
		if z, ok := v.Interface().(interface{ IsZero() bool }); ok {
			return z.IsZero()
		}
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	default:
		return false
	}
}
