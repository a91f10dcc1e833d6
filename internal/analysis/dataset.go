package analysis

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/KaramelBytes/datasight-cli/internal/parser"
	"gopkg.in/yaml.v3"
)

// DataType is the inferred kind of a column.
type DataType string

const (
	Numerical   DataType = "numerical"
	Categorical DataType = "categorical"
	Binary      DataType = "binary"
	// Ordinal is reserved and never inferred.
	Ordinal DataType = "ordinal"
)

// MaxCategoricalSamples caps the distinct values kept for a categorical column.
const MaxCategoricalSamples = 10

// ColumnInfo profiles one column.
type ColumnInfo struct {
	Name        string   `json:"name" yaml:"name"`
	DataType    DataType `json:"dataType" yaml:"dataType"`
	NullCount   int      `json:"nullCount" yaml:"nullCount"`
	UniqueCount int      `json:"uniqueCount" yaml:"uniqueCount"`
	// UniqueValues holds the first distinct values in first-seen order:
	// up to MaxCategoricalSamples for categorical columns, all of them for binary ones.
	UniqueValues []parser.Value `json:"uniqueValues,omitempty" yaml:"uniqueValues,omitempty"`
	// Stats is set for numerical columns and for binary columns holding numbers.
	Stats *Stats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// DatasetAnalysis is the full profile of a dataset.
type DatasetAnalysis struct {
	RowCount           int            `json:"rowCount" yaml:"rowCount"`
	ColumnCount        int            `json:"columnCount" yaml:"columnCount"`
	Columns            []ColumnInfo   `json:"columns" yaml:"columns"`
	MissingValues      MissingSummary `json:"missingValuesSummary" yaml:"missingValuesSummary"`
	NumericalColumns   []string       `json:"numericalColumns" yaml:"numericalColumns"`
	CategoricalColumns []string       `json:"categoricalColumns" yaml:"categoricalColumns"`
	BinaryColumns      []string       `json:"binaryColumns" yaml:"binaryColumns"`
}

// Column returns the profile for name.
func (a *DatasetAnalysis) Column(name string) (ColumnInfo, bool) {
	for _, c := range a.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnInfo{}, false
}

// MissingCount is the number of null cells in one column.
type MissingCount struct {
	Column string `json:"column" yaml:"column"`
	Count  int    `json:"count" yaml:"count"`
}

// MissingSummary lists columns with at least one null cell, in header order.
type MissingSummary []MissingCount

// Get returns the missing count recorded for column.
func (m MissingSummary) Get(column string) (int, bool) {
	for _, mc := range m {
		if mc.Column == column {
			return mc.Count, true
		}
	}
	return 0, false
}

// Total sums all missing counts.
func (m MissingSummary) Total() int {
	total := 0
	for _, mc := range m {
		total += mc.Count
	}
	return total
}

// MarshalJSON encodes the summary as an object keyed by column, in header order.
func (m MissingSummary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, mc := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(mc.Column)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(mc.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the summary as a mapping in header order.
func (m MissingSummary) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, mc := range m {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: mc.Column},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(mc.Count)},
		)
	}
	return n, nil
}

// AnalyzeDataset infers a type for every column and computes its statistics.
// Headers come from the first row. An empty input yields a zeroed analysis.
func AnalyzeDataset(rows []parser.Row) *DatasetAnalysis {
	a := &DatasetAnalysis{
		Columns:            []ColumnInfo{},
		MissingValues:      MissingSummary{},
		NumericalColumns:   []string{},
		CategoricalColumns: []string{},
		BinaryColumns:      []string{},
	}
	if len(rows) == 0 {
		return a
	}

	headers := rows[0].Keys()
	for j, h := range headers {
		col := profileColumn(h, columnValues(rows, j, h))
		switch col.DataType {
		case Numerical:
			a.NumericalColumns = append(a.NumericalColumns, h)
		case Binary:
			a.BinaryColumns = append(a.BinaryColumns, h)
		default:
			a.CategoricalColumns = append(a.CategoricalColumns, h)
		}
		a.Columns = append(a.Columns, col)
		if col.NullCount > 0 {
			a.MissingValues = append(a.MissingValues, MissingCount{Column: h, Count: col.NullCount})
		}
	}
	a.RowCount = len(rows)
	a.ColumnCount = len(headers)
	return a
}

// columnValues collects column j (named name) from every row. A row that
// lacks the column contributes null.
func columnValues(rows []parser.Row, j int, name string) []parser.Value {
	out := make([]parser.Value, len(rows))
	for i, r := range rows {
		if keys := r.Keys(); j < len(keys) && keys[j] == name {
			out[i] = r.At(j)
			continue
		}
		out[i], _ = r.Get(name)
	}
	return out
}

// columnSet is the non-null content of one column.
type columnSet struct {
	nonNull  int
	distinct []parser.Value // first-seen order
	numbers  []float64      // row order
}

func collect(values []parser.Value) columnSet {
	var cs columnSet
	seen := make(map[parser.Value]struct{})
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		cs.nonNull++
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			cs.distinct = append(cs.distinct, v)
		}
		if f, ok := v.Float(); ok {
			cs.numbers = append(cs.numbers, f)
		}
	}
	return cs
}

// DetectDataType infers the type of a column from its cells.
func DetectDataType(values []parser.Value) DataType {
	return collect(values).dataType()
}

func (cs columnSet) dataType() DataType {
	if cs.nonNull == 0 {
		return Categorical
	}
	allNumeric := len(cs.numbers) == cs.nonNull
	switch {
	case allNumeric && len(cs.distinct) == 2:
		return Binary
	case allNumeric:
		return Numerical
	case len(cs.distinct) == 2:
		return Binary
	default:
		return Categorical
	}
}

func profileColumn(name string, values []parser.Value) ColumnInfo {
	cs := collect(values)
	col := ColumnInfo{
		Name:        name,
		DataType:    cs.dataType(),
		NullCount:   len(values) - cs.nonNull,
		UniqueCount: len(cs.distinct),
	}
	switch col.DataType {
	case Numerical:
		st := CalculateStats(cs.numbers)
		col.Stats = &st
	case Binary:
		col.UniqueValues = cs.distinct
		if len(cs.numbers) > 0 {
			st := CalculateStats(cs.numbers)
			col.Stats = &st
		}
	default:
		n := len(cs.distinct)
		if n > MaxCategoricalSamples {
			n = MaxCategoricalSamples
		}
		col.UniqueValues = cs.distinct[:n:n]
	}
	return col
}
