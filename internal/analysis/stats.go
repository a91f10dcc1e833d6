package analysis

import (
	"bytes"
	"math"
	"sort"
	"strconv"
)

// Stats are descriptive statistics over the numeric cells of a column.
type Stats struct {
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	Std    float64 `json:"std" yaml:"std"`
}

// CalculateStats computes min, max, mean, median and the population standard
// deviation of values. An empty input yields all zeros.
func CalculateStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	var median float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}

	return Stats{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   mean,
		Median: median,
		Std:    math.Sqrt(sq / n),
	}
}

// MarshalJSON writes non-finite statistics as null.
func (s Stats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	fields := []struct {
		name string
		v    float64
	}{
		{"min", s.Min}, {"max", s.Max}, {"mean", s.Mean}, {"median", s.Median}, {"std", s.Std},
	}
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(f.name))
		buf.WriteByte(':')
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(strconv.FormatFloat(f.v, 'g', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
