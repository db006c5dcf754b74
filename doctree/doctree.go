// Package doctree models the semi-structured documents returned by the
// parsing service as a tagged variant over the JSON value space.
//
// Parsed documents arrive as arbitrary trees of scalars, lists and maps.
// The package preserves object key order (Go maps would not), strips
// layout-only keys before embedding, and flattens trees to plain text.
package doctree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

// Field is a single key/value entry of an object Value.
// Objects are stored as ordered field slices so key order survives
// decode/flatten round trips.
type Field struct {
	Key string
	Val Value
}

// Value is one node of a parsed-document tree.
type Value struct {
	Kind   Kind
	Str    string
	Num    float64
	Bool   bool
	Items  []Value
	Fields []Field
}

// Null returns the null value.
func Null() Value { return Value{Kind: KindNull} }

// String returns a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Boolean returns a boolean value.
func Boolean(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Array returns an array value holding items in order.
func Array(items ...Value) Value { return Value{Kind: KindArray, Items: items} }

// Object returns an object value holding fields in order.
func Object(fields ...Field) Value { return Value{Kind: KindObject, Fields: fields} }

// IsNull reports whether the value is the null variant.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Flatten renders a value tree to plain text:
//
//   - null renders as the empty string
//   - scalars render as their string form
//   - arrays render children joined by newline, in order
//   - objects render "key: value" lines in field order, keys unsorted
//
// Flattening an already-flat string value is the identity function.
func Flatten(v Value) string {
	switch v.Kind {
	case KindNull:
		return ""
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindArray:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			parts[i] = Flatten(item)
		}
		return strings.Join(parts, "\n")
	case KindObject:
		parts := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			parts[i] = f.Key + ": " + Flatten(f.Val)
		}
		return strings.Join(parts, "\n")
	}
	return ""
}

// strippedKeyFragments are substrings of map keys that carry positional or
// layout metadata rather than document content. Keys containing any of
// these are dropped before flattening so embeddings only see meaningful text.
var strippedKeyFragments = []string{"bbox", "bounding", "citation", "layout", "coordinate"}

func shouldStripKey(key string) bool {
	lower := strings.ToLower(key)
	for _, fragment := range strippedKeyFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

// Cleanse returns a copy of the tree with layout-metadata keys removed,
// recursively. A tree with no such keys is returned unchanged in content,
// and cleansing twice yields the same tree as cleansing once.
func Cleanse(v Value) Value {
	switch v.Kind {
	case KindArray:
		items := make([]Value, len(v.Items))
		for i, item := range v.Items {
			items[i] = Cleanse(item)
		}
		return Value{Kind: KindArray, Items: items}
	case KindObject:
		fields := make([]Field, 0, len(v.Fields))
		for _, f := range v.Fields {
			if shouldStripKey(f.Key) {
				continue
			}
			fields = append(fields, Field{Key: f.Key, Val: Cleanse(f.Val)})
		}
		return Value{Kind: KindObject, Fields: fields}
	default:
		return v
	}
}

// MarshalJSON encodes the value as standard JSON, emitting object fields
// in their stored order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindArray:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			encoded, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(encoded)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindObject:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, f := range v.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			encoded, err := f.Val.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(encoded)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("doctree: unknown kind %d", v.Kind)
}

// UnmarshalJSON decodes standard JSON into a value tree, preserving the
// order of object keys as they appear in the input.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	decoded, err := decodeValue(dec)
	if err != nil {
		return err
	}

	// Reject trailing content after the first value.
	if _, err := dec.Token(); err == nil {
		return fmt.Errorf("doctree: trailing data after JSON value")
	}

	*v = decoded
	return nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case bool:
		return Boolean(t), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Number(n), nil
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return Value{}, err
			}
			return Value{Kind: KindArray, Items: items}, nil
		case '{':
			fields := []Field{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("doctree: object key is not a string: %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				fields = append(fields, Field{Key: key, Val: val})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return Value{}, err
			}
			return Value{Kind: KindObject, Fields: fields}, nil
		}
	}
	return Value{}, fmt.Errorf("doctree: unexpected token %v", tok)
}
