package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// ToJSON renders a node as JSON, preserving object field order.
// Byte strings render as JSON strings.
func ToJSON(y *Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(buf, y); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, y *Node) error {
	switch y.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(y.Bool))
	case IntType:
		buf.WriteString(strconv.FormatInt(y.Int64, 10))
	case RealType:
		d, err := json.Marshal(y.Float64)
		if err != nil {
			return err
		}
		buf.Write(d)
	case StringType, BytesType:
		d, err := json.Marshal(y.StringValue())
		if err != nil {
			return err
		}
		buf.Write(d)
	case ArrayType:
		buf.WriteByte('[')
		for i, v := range y.Values {
			if i != 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i := range y.Fields {
			if i != 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(y.Fields[i].String)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := writeJSON(buf, y.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: cannot render type %s", errInternal, y.Type)
	}
	return nil
}

// FromJSON parses a JSON document into a node tree, preserving object field
// order. Numbers without fraction or exponent become IntType, others
// RealType.
func FromJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	node, err := readJSON(dec)
	if err != nil {
		return nil, err
	}
	// reject trailing values
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrBadJSON)
	}
	return node, nil
}

func readJSON(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadJSON, err)
	}
	return readJSONToken(dec, tok)
}

func readJSONToken(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch v := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(v), nil
	case string:
		return FromString(v), nil
	case json.Number:
		if i, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return FromInt(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %q", ErrBadJSON, v.String())
		}
		return FromFloat(f), nil
	case json.Delim:
		switch v {
		case '[':
			var vals []*Node
			for dec.More() {
				elt, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				vals = append(vals, elt)
			}
			if _, err := dec.Token(); err != nil { // closing ]
				return nil, fmt.Errorf("%w: %w", ErrBadJSON, err)
			}
			return FromSlice(vals), nil
		case '{':
			res := Object()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("%w: %w", ErrBadJSON, err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("%w: object key %v", ErrBadJSON, keyTok)
				}
				val, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				res.Field(key, val)
			}
			if _, err := dec.Token(); err != nil { // closing }
				return nil, fmt.Errorf("%w: %w", ErrBadJSON, err)
			}
			return res, nil
		}
	}
	return nil, fmt.Errorf("%w: unexpected token %v", ErrBadJSON, tok)
}
