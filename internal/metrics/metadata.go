package metrics

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var (
	errMetadataNotObject    = errors.New("metadata must be a JSON object")
	errUnsupportedValueType = errors.New("unsupported metadata value type")
)

// Kind identifies which scalar a Value holds.
type Kind uint8

const (
	// KindInvalid is the zero Kind.
	KindInvalid Kind = iota
	// KindString marks a string value.
	KindString
	// KindNumber marks a float64 value.
	KindNumber
	// KindBool marks a boolean value.
	KindBool
)

// Value is a metadata value restricted to string, number or boolean.
type Value struct {
	kind Kind
	str  string
	num  float64
	flag bool
}

// String returns a string Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, flag: b}
}

// Kind reports which scalar v holds.
func (v Value) Kind() Kind {
	return v.kind
}

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	return v.flag, v.kind == KindBool
}

// String renders v for display.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.flag)
	default:
		return ""
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.flag)
	default:
		return []byte("null"), nil
	}
}

// Field is a single metadata key/value pair.
type Field struct {
	Key   string
	Value Value
}

// StringField is shorthand for a string-valued Field.
func StringField(key, value string) Field {
	return Field{Key: key, Value: String(value)}
}

// NumberField is shorthand for a number-valued Field.
func NumberField(key string, value float64) Field {
	return Field{Key: key, Value: Number(value)}
}

// BoolField is shorthand for a boolean Field.
func BoolField(key string, value bool) Field {
	return Field{Key: key, Value: Bool(value)}
}

// Metadata is an insertion-ordered map of scalar values. The zero value is empty
// and ready to use.
type Metadata struct {
	keys   []string
	values map[string]Value
}

// NewMetadata builds Metadata from fields. A repeated key keeps its first
// position and takes the last value.
func NewMetadata(fields ...Field) Metadata {
	var m Metadata
	for _, f := range fields {
		m.Set(f.Key, f.Value)
	}

	return m
}

// Set stores value under key.
func (m *Metadata) Set(key string, value Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}

	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}

	m.values[key] = value
}

// Get returns the value stored under key.
func (m Metadata) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m Metadata) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)

	return keys
}

// Len returns the number of keys.
func (m Metadata) Len() int {
	return len(m.keys)
}

// Clone returns a deep copy that shares no state with m.
func (m Metadata) Clone() Metadata {
	if len(m.keys) == 0 {
		return Metadata{}
	}

	clone := Metadata{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]Value, len(m.values)),
	}
	copy(clone.keys, m.keys)

	for k, v := range m.values {
		clone.values[k] = v
	}

	return clone
}

// Equal reports whether both maps hold the same keys in the same order with equal values.
func (m Metadata) Equal(other Metadata) bool {
	if len(m.keys) != len(other.keys) {
		return false
	}

	for i, k := range m.keys {
		if other.keys[i] != k || m.values[k] != other.values[k] {
			return false
		}
	}

	return true
}

// MarshalJSON writes the map as a JSON object preserving key order.
func (m Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshaling metadata key %q: %w", k, err)
		}

		value, err := m.values[k].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("marshaling metadata value for %q: %w", k, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object preserving key order. A null document yields
// empty metadata. Nested objects and arrays are rejected.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	*m = Metadata{}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading metadata: %w", err)
	}

	if tok == nil {
		return nil
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errMetadataNotObject
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading metadata key: %w", err)
		}

		key, _ := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading metadata value for %q: %w", key, err)
		}

		value, err := valueFromToken(valTok)
		if err != nil {
			return fmt.Errorf("metadata key %q: %w", key, err)
		}

		m.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("reading metadata end: %w", err)
	}

	return nil
}

func valueFromToken(tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("parsing number %q: %w", t.String(), err)
		}

		return Number(f), nil
	default:
		return Value{}, fmt.Errorf("%w: %v", errUnsupportedValueType, tok)
	}
}
