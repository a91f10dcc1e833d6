package parser

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Row is one record: an ordered mapping from column name to Value.
// Rows produced by a single ParseCSV call share one key slice.
type Row struct {
	keys   []string
	values []Value
}

// NewRow builds a row over keys. Missing trailing values are null and
// surplus values are dropped.
func NewRow(keys []string, values []Value) Row {
	vals := make([]Value, len(keys))
	copy(vals, values)
	return Row{keys: keys, values: vals}
}

// Keys returns the column names in header order. The slice is shared; do not modify it.
func (r Row) Keys() []string { return r.keys }

// Len reports the number of columns.
func (r Row) Len() int { return len(r.keys) }

// At returns the value at column index i, or null when out of range.
func (r Row) At(i int) Value {
	if i < 0 || i >= len(r.values) {
		return NullValue()
	}
	return r.values[i]
}

// Get returns the value stored under name.
func (r Row) Get(name string) (Value, bool) {
	for i, k := range r.keys {
		if k == name {
			return r.values[i], true
		}
	}
	return NullValue(), false
}

// Values returns a copy of the row's values in header order.
func (r Row) Values() []Value {
	out := make([]Value, len(r.values))
	copy(out, r.values)
	return out
}

// MarshalJSON encodes the row as an object whose keys follow header order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := r.values[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the row as a mapping in header order.
func (r Row) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for i, k := range r.keys {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			r.values[i].yamlNode(),
		)
	}
	return n, nil
}
