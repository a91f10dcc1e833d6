package parser

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

type csvParser struct{}

func (csvParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

func (csvParser) Parse(content []byte) ([]Row, error) {
	return ParseCSV(string(content)), nil
}

// ParseCSV splits text into rows. The first line is the header; fields are
// separated by plain commas with no quoting support, so a value containing a
// comma spills into the next column. Short lines yield trailing nulls and
// surplus fields are ignored. It never fails: empty text yields no rows.
func ParseCSV(text string) []Row {
	lines := strings.Split(trimSpace(text), "\n")

	// Duplicate names collapse onto one key: the first occurrence fixes the
	// position, the last occurrence supplies the value.
	var keys []string
	slot := make(map[string]int)
	var source []int // header field index -> key index
	for _, h := range strings.Split(lines[0], ",") {
		name := trimSpace(h)
		idx, ok := slot[name]
		if !ok {
			idx = len(keys)
			slot[name] = idx
			keys = append(keys, name)
		}
		source = append(source, idx)
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := strings.Split(line, ",")
		vals := make([]Value, len(keys))
		for i, idx := range source {
			raw := ""
			if i < len(fields) {
				raw = fields[i]
			}
			vals[idx] = Coerce(raw)
		}
		rows = append(rows, Row{keys: keys, values: vals})
	}
	return rows
}

// Coerce converts one raw field into a cell value: empty, "null" and "NaN"
// become null, anything that reads entirely as a number becomes a number,
// and everything else stays text.
func Coerce(raw string) Value {
	s := trimSpace(raw)
	switch s {
	case "", "null", "NaN":
		return NullValue()
	}
	if f, ok := parseNumber(s); ok {
		return NumberValue(f)
	}
	return StringValue(s)
}

var decimalRE = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// parseNumber accepts the numeric-literal grammar of JavaScript's Number():
// signed decimals with optional exponent, signed Infinity, and unsigned
// 0x/0o/0b integers.
func parseNumber(s string) (float64, bool) {
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			return parseRadix(s[2:], base)
		}
	}
	if !decimalRE.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

func parseRadix(digits string, base int) (float64, bool) {
	for _, r := range digits {
		if r == '_' || r == '+' || r == '-' {
			return 0, false
		}
	}
	if u, err := strconv.ParseUint(digits, base, 64); err == nil {
		return float64(u), true
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return 0, false
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f, true
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
