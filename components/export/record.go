package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Field is a single key/value pair used to build records.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Record is a flat row whose keys keep insertion order. The order of the
// first record of a dataset decides the column order of every export.
type Record struct {
	fields *orderedmap.OrderedMap[string, any]
}

// NewRecord builds a record from the provided fields in order.
func NewRecord(fields ...Field) *Record {
	rec := &Record{fields: orderedmap.New[string, any](len(fields))}
	for _, f := range fields {
		rec.fields.Set(f.Key, f.Value)
	}
	return rec
}

// RecordFromMap builds a record from a map using the provided key order.
// Keys missing from the map are stored as nil.
func RecordFromMap(values map[string]any, keys ...string) *Record {
	rec := &Record{fields: orderedmap.New[string, any](len(keys))}
	for _, key := range keys {
		rec.fields.Set(key, values[key])
	}
	return rec
}

func (r *Record) ensure() {
	if r.fields == nil {
		r.fields = orderedmap.New[string, any]()
	}
}

// Set stores a value. Existing keys keep their position.
func (r *Record) Set(key string, value any) *Record {
	r.ensure()
	r.fields.Set(key, value)
	return r
}

// Get returns the value stored for key.
func (r *Record) Get(key string) (any, bool) {
	if r == nil || r.fields == nil {
		return nil, false
	}
	return r.fields.Get(key)
}

// Value returns the stored value or nil.
func (r *Record) Value(key string) any {
	v, _ := r.Get(key)
	return v
}

// Len reports the number of fields.
func (r *Record) Len() int {
	if r == nil || r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	if r == nil || r.fields == nil {
		return nil
	}
	keys := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Fields returns the key/value pairs in insertion order.
func (r *Record) Fields() []Field {
	if r == nil || r.fields == nil {
		return nil
	}
	out := make([]Field, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Field{Key: pair.Key, Value: pair.Value})
	}
	return out
}

// Map returns an unordered copy of the record.
func (r *Record) Map() map[string]any {
	out := make(map[string]any, r.Len())
	for _, f := range r.Fields() {
		out[f.Key] = f.Value
	}
	return out
}

// Clone returns a shallow copy.
func (r *Record) Clone() *Record {
	return NewRecord(r.Fields()...)
}

// MarshalJSON writes the record as an object with keys in insertion order.
// Strings are not HTML escaped here; encoders that escape (json.Marshal)
// still do so when they compact the output.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil || r.fields == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	buf.WriteByte('{')
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		if pair != r.fields.Oldest() {
			buf.WriteByte(',')
		}
		if err := encodeTrimmed(enc, &buf, pair.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeTrimmed(enc, &buf, pair.Value); err != nil {
			return nil, fmt.Errorf("export: marshal field %q: %w", pair.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeTrimmed encodes v without the newline json.Encoder appends.
func encodeTrimmed(enc *json.Encoder, buf *bytes.Buffer, v any) error {
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}

// UnmarshalJSON reads an object keeping the key order of the payload.
func (r *Record) UnmarshalJSON(data []byte) error {
	r.fields = orderedmap.New[string, any]()
	return r.fields.UnmarshalJSON(data)
}

// DecodeRecords parses a JSON array of objects into ordered records.
func DecodeRecords(data []byte) ([]*Record, error) {
	var records []*Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
