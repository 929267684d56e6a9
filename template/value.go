// Package template implements the placeholder substitution engine used to
// render provider and endpoint templates, along with the dynamically typed
// Value model that variables are expressed in.
package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the concrete type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a closed tagged union over the types a template variable can
// hold: string, number, bool, null, list and map. Values are immutable once
// constructed; map fields keep their insertion order so serialization is
// deterministic.
type Value struct {
	kind    Kind
	str     string
	integer int64
	float   float64
	isInt   bool
	boolean bool
	list    []Value
	fields  []Field
}

// Field is a single ordered key/value entry of a map Value.
type Field struct {
	Key   string
	Value Value
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer number Value.
func Int(i int64) Value { return Value{kind: KindNumber, integer: i, isInt: true} }

// Float returns a floating-point number Value.
func Float(f float64) Value { return Value{kind: KindNumber, float: f} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// List returns a list Value holding items in order.
func List(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

// Map returns a map Value holding fields in declaration order.
func Map(fields ...Field) Value {
	return Value{kind: KindMap, fields: fields}
}

// F builds a single map field; shorthand for Map construction.
func F(key string, value Value) Field {
	return Field{Key: key, Value: value}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// String renders the value into its canonical textual form for template
// substitution: strings verbatim, numbers in plain decimal notation, bools
// as true/false, null as the literal "null", and lists and maps as compact
// JSON. It is total over well-formed values.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return v.str
	case KindNumber:
		if v.isInt {
			return strconv.FormatInt(v.integer, 10)
		}
		return strconv.FormatFloat(v.float, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindList, KindMap:
		data, err := v.MarshalJSON()
		if err != nil {
			// Marshal over the closed variant set cannot fail; keep the
			// contract total anyway.
			return "null"
		}
		return string(data)
	default:
		return ""
	}
}

// MarshalJSON serializes the value as JSON, preserving map field order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return []byte(v.String()), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.boolean)), nil
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			data, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(data)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindMap:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, field := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(field.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			data, err := field.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(data)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown value kind %d", v.kind)
	}
}

// Items returns the elements of a list value, or nil for other kinds.
func (v Value) Items() []Value { return v.list }

// Fields returns the ordered fields of a map value, or nil for other kinds.
func (v Value) Fields() []Field { return v.fields }

// Equal reports structural equality between two values. Map comparison is
// order-insensitive; list comparison is order-sensitive. Integer and float
// numbers compare equal when they represent the same quantity.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		if a.kind == KindNumber && b.kind == KindNumber {
			return numberEqual(a, b)
		}
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindString:
		return a.str == b.str
	case KindNumber:
		return numberEqual(a, b)
	case KindBool:
		return a.boolean == b.boolean
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for _, fa := range a.fields {
			found := false
			for _, fb := range b.fields {
				if fa.Key == fb.Key {
					if !Equal(fa.Value, fb.Value) {
						return false
					}
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func numberEqual(a, b Value) bool {
	if a.isInt && b.isInt {
		return a.integer == b.integer
	}
	return a.asFloat() == b.asFloat()
}

func (v Value) asFloat() float64 {
	if v.isInt {
		return float64(v.integer)
	}
	return v.float
}

// From converts an arbitrary Go value into a Value by round-tripping it
// through its JSON encoding. Map key order and the integer/float distinction
// are preserved by decoding at the token level.
func From(v any) (Value, error) {
	if val, ok := v.(Value); ok {
		return val, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return Null(), fmt.Errorf("value is not serializable: %w", err)
	}
	return Parse(data)
}

// Parse decodes JSON text into a Value, preserving object key order.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	val, err := decodeValue(dec)
	if err != nil {
		return Null(), fmt.Errorf("invalid value: %w", err)
	}
	return val, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Null(), err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		if !strings.ContainsAny(t.String(), ".eE") {
			if i, err := t.Int64(); err == nil {
				return Int(i), nil
			}
		}
		f, err := t.Float64()
		if err != nil {
			return Null(), err
		}
		return Float(f), nil
	case json.Delim:
		switch t {
		case '[':
			var items []Value
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Null(), err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil { // closing ]
				return Null(), err
			}
			return List(items...), nil
		case '{':
			var fields []Field
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Null(), err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Null(), fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Null(), err
				}
				fields = append(fields, Field{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // closing }
				return Null(), err
			}
			return Map(fields...), nil
		}
	}
	return Null(), fmt.Errorf("unexpected token %v", tok)
}
