package parser

import (
	"encoding/json"
	"math"

	"github.com/KaramelBytes/datasight-cli/internal/utils"
	"gopkg.in/yaml.v3"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	Null Kind = iota
	Number
	String
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case String:
		return "string"
	default:
		return "null"
	}
}

// Value is a single coerced cell: null, a number, or a string.
// The zero Value is Null. Values are comparable and can key a map;
// +0 and -0 compare equal.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// NullValue returns the null cell.
func NullValue() Value { return Value{} }

// NumberValue wraps f as a numeric cell.
func NumberValue(f float64) Value { return Value{kind: Number, num: f} }

// StringValue wraps s as a text cell.
func StringValue(s string) Value { return Value{kind: String, str: s} }

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == Null }
func (v Value) IsNumber() bool { return v.kind == Number }

// Float returns the numeric payload and whether v is a number.
func (v Value) Float() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	return v.num, true
}

// Text returns the string payload and whether v is a string.
func (v Value) Text() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.str, true
}

// String renders the value the way the report prints it; null renders as "null".
func (v Value) String() string {
	switch v.kind {
	case Number:
		return utils.FormatNumber(v.num)
	case String:
		return v.str
	default:
		return "null"
	}
}

// MarshalJSON encodes null, a number, or a string. Non-finite numbers
// have no JSON form and encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Number:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.num)
	case String:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}

// MarshalYAML encodes the value as a YAML scalar.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.yamlNode(), nil
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case Number:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Value: utils.FormatNumber(v.num)}
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
