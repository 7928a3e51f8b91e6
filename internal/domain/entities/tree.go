package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
)

// Tree is a string-keyed mapping that remembers insertion order.
//
// Values are either leaves (string, json.Number, int64, float64, bool, nil,
// []any) or nested *Tree. A nil *Tree behaves as an empty, read-only tree.
type Tree struct {
	keys   []string
	values map[string]any
}

// NewTree returns an empty tree ready for Set.
func NewTree() *Tree {
	return &Tree{values: make(map[string]any)}
}

func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the keys in insertion order.
func (t *Tree) Keys() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.keys)
}

func (t *Tree) Get(key string) (any, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.values[key]
	return v, ok
}

func (t *Tree) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Subtree returns the nested tree stored under key, if the value is one.
func (t *Tree) Subtree(key string) (*Tree, bool) {
	v, ok := t.Get(key)
	if !ok {
		return nil, false
	}
	sub, isTree := v.(*Tree)
	return sub, isTree
}

// Set stores value under key. A new key is appended to the order; an
// existing key keeps its position.
func (t *Tree) Set(key string, value any) {
	if t.values == nil {
		t.values = make(map[string]any)
	}
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Clone returns a deep copy of t.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	out := &Tree{keys: slices.Clone(t.keys), values: make(map[string]any, len(t.values))}
	for k, v := range t.values {
		out.values[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case *Tree:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Equal reports whether t and other hold the same keys, in the same order,
// with equal values. A nil tree only equals another nil tree.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == nil && other == nil
	}
	if t.Len() != other.Len() {
		return false
	}
	for i, key := range t.Keys() {
		if other.keys[i] != key {
			return false
		}
		if !valuesEqual(t.values[key], other.values[key]) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case *Tree:
		bv, ok := b.(*Tree)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// Truthy mirrors the truthiness rules translation files were written
// against: nil, false, "", numeric zero and NaN are falsy. Objects and
// arrays are truthy even when empty.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case *Tree:
		return val != nil
	case bool:
		return val
	case string:
		return val != ""
	case json.Number:
		f, err := strconv.ParseFloat(string(val), 64)
		if err != nil {
			return true
		}
		return f != 0
	case float64:
		return val != 0 && !math.IsNaN(val)
	case float32:
		return val != 0 && !math.IsNaN(float64(val))
	case int:
		return val != 0
	case int64:
		return val != 0
	case uint64:
		return val != 0
	default:
		return true
	}
}

// MarshalJSON writes keys in insertion order. HTML characters are left
// unescaped so help markup survives verbatim.
func (t *Tree) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONValue(&buf, key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONValue(&buf, t.values[key]); err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeJSONValue appends v the way JSON.stringify writes it: numbers in
// shortest form and U+2028/U+2029 left raw.
func writeJSONValue(buf *bytes.Buffer, v any) error {
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalizeNumbers(v)); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	out.Truncate(out.Len() - 1)
	buf.Write(unescapeLineSeparators(out.Bytes()))
	return nil
}

// normalizeNumbers turns json.Number leaves into float64 so they are
// written in shortest form. Out-of-range numbers become null.
func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(val), 64)
		if err != nil || math.IsInf(f, 0) {
			return nil
		}
		if f == 0 {
			return 0.0 // drops the sign of -0
		}
		return f
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeNumbers(item)
		}
		return out
	default:
		return v
	}
}

// unescapeLineSeparators replaces the \u2028 and \u2029 escapes
// encoding/json always emits with the raw characters. Escapes are walked
// pairwise so an escaped backslash followed by "u2028" is left alone.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		if i+5 < len(b) && (string(b[i+1:i+6]) == "u2028" || string(b[i+1:i+6]) == "u2029") {
			if b[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}

// UnmarshalJSON decodes a JSON object keeping the document's key order.
// Numbers are kept as json.Number.
func (t *Tree) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected a JSON object, got %v", tok)
	}
	parsed, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

func decodeObject(dec *json.Decoder) (*Tree, error) {
	tree := NewTree()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		tree.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return tree, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		return decodeObject(dec)
	case '[':
		items := []any{}
		for dec.More() {
			item, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}
