package parser

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestCoerce(t *testing.T) {
	cases := []struct {
		in   string
		kind Kind
		num  float64
		str  string
	}{
		{"", Null, 0, ""},
		{"   ", Null, 0, ""},
		{"null", Null, 0, ""},
		{"NaN", Null, 0, ""},
		{"nan", String, 0, "nan"},
		{"NULL", String, 0, "NULL"},
		{"42", Number, 42, ""},
		{" 3.5 ", Number, 3.5, ""},
		{"-0.25", Number, -0.25, ""},
		{"+7", Number, 7, ""},
		{".5", Number, 0.5, ""},
		{"5.", Number, 5, ""},
		{"1e3", Number, 1000, ""},
		{"2E-2", Number, 0.02, ""},
		{"0x1F", Number, 31, ""},
		{"0b101", Number, 5, ""},
		{"0o17", Number, 15, ""},
		{"Infinity", Number, math.Inf(1), ""},
		{"-Infinity", Number, math.Inf(-1), ""},
		{"inf", String, 0, "inf"},
		{"1_000", String, 0, "1_000"},
		{"-0x10", String, 0, "-0x10"},
		{"12abc", String, 0, "12abc"},
		{"male", String, 0, "male"},
		{"1 000", String, 0, "1 000"},
	}
	for _, c := range cases {
		v := Coerce(c.in)
		if v.Kind() != c.kind {
			t.Errorf("Coerce(%q) kind = %s, want %s", c.in, v.Kind(), c.kind)
			continue
		}
		switch c.kind {
		case Number:
			if f, _ := v.Float(); f != c.num {
				t.Errorf("Coerce(%q) = %v, want %v", c.in, f, c.num)
			}
		case String:
			if s, _ := v.Text(); s != c.str {
				t.Errorf("Coerce(%q) = %q, want %q", c.in, s, c.str)
			}
		}
	}
}

func TestParseCSVRowsShareHeader(t *testing.T) {
	text := "id,sex,fare\n1,male,7.25\n2,female,71.28\n3,female,null\n"
	rows := ParseCSV(text)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	want := []string{"id", "sex", "fare"}
	for i, r := range rows {
		if strings.Join(r.Keys(), ",") != strings.Join(want, ",") {
			t.Fatalf("row %d keys = %v, want %v", i, r.Keys(), want)
		}
	}
	if v, _ := rows[0].Get("fare"); !v.IsNumber() {
		t.Fatalf("expected numeric fare, got %v", v)
	}
	if v, _ := rows[1].Get("sex"); v != StringValue("female") {
		t.Fatalf("expected female, got %v", v)
	}
	if v, _ := rows[2].Get("fare"); !v.IsNull() {
		t.Fatalf("expected null fare, got %v", v)
	}
}

func TestParseCSVEdgeCases(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if rows := ParseCSV(""); len(rows) != 0 {
			t.Fatalf("expected no rows, got %d", len(rows))
		}
		if rows := ParseCSV(" \n\n "); len(rows) != 0 {
			t.Fatalf("expected no rows for whitespace, got %d", len(rows))
		}
	})
	t.Run("header only", func(t *testing.T) {
		if rows := ParseCSV("a,b,c\n"); len(rows) != 0 {
			t.Fatalf("expected no rows, got %d", len(rows))
		}
	})
	t.Run("short row pads with null", func(t *testing.T) {
		rows := ParseCSV("a,b,c\n1\n")
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}
		for _, k := range []string{"b", "c"} {
			if v, ok := rows[0].Get(k); !ok || !v.IsNull() {
				t.Fatalf("expected null %s, got %v (ok=%v)", k, v, ok)
			}
		}
	})
	t.Run("surplus fields dropped", func(t *testing.T) {
		rows := ParseCSV("a,b\n1,2,3\n")
		if rows[0].Len() != 2 {
			t.Fatalf("expected 2 columns, got %d", rows[0].Len())
		}
	})
	t.Run("quoted comma is not special", func(t *testing.T) {
		rows := ParseCSV("name,city\n\"Doe, John\",Paris\n")
		if v, _ := rows[0].Get("name"); v != StringValue("\"Doe") {
			t.Fatalf("expected split quoted field, got %v", v)
		}
		if v, _ := rows[0].Get("city"); v != StringValue("John\"") {
			t.Fatalf("expected spill into city, got %v", v)
		}
	})
	t.Run("crlf line endings", func(t *testing.T) {
		rows := ParseCSV("a,b\r\n1,2\r\n3,4\r\n")
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		if v, _ := rows[1].Get("b"); v != NumberValue(4) {
			t.Fatalf("expected 4, got %v", v)
		}
	})
	t.Run("duplicate header keeps last value", func(t *testing.T) {
		rows := ParseCSV("x,y,x\n1,2,3\n")
		if got := strings.Join(rows[0].Keys(), ","); got != "x,y" {
			t.Fatalf("expected keys x,y, got %s", got)
		}
		if v, _ := rows[0].Get("x"); v != NumberValue(3) {
			t.Fatalf("expected last x value 3, got %v", v)
		}
	})
	t.Run("interior blank line is an all-null row", func(t *testing.T) {
		rows := ParseCSV("a,b\n1,2\n\n3,4")
		if len(rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(rows))
		}
		if v := rows[1].At(0); !v.IsNull() {
			t.Fatalf("expected null, got %v", v)
		}
	})
}

func TestRowRowCountMatchesLines(t *testing.T) {
	var b strings.Builder
	b.WriteString("a,b\n")
	for i := 0; i < 25; i++ {
		b.WriteString("1,x\n")
	}
	if rows := ParseCSV(b.String()); len(rows) != 25 {
		t.Fatalf("expected 25 rows, got %d", len(rows))
	}
}

func TestRowJSONKeepsHeaderOrder(t *testing.T) {
	rows := ParseCSV("z,a,m\n1,hello,\n")
	b, err := json.Marshal(rows[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"z":1,"a":"hello","m":null}`; got != want {
		t.Fatalf("json = %s, want %s", got, want)
	}
	inf := NewRow([]string{"v"}, []Value{NumberValue(math.Inf(1))})
	b, err = json.Marshal(inf)
	if err != nil {
		t.Fatalf("marshal inf: %v", err)
	}
	if string(b) != `{"v":null}` {
		t.Fatalf("expected infinite number to encode as null, got %s", b)
	}
}

func TestRowYAML(t *testing.T) {
	rows := ParseCSV("z,a,m\n1.5,true,\n")
	b, err := yaml.Marshal(rows[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := "z: 1.5\na: \"true\"\nm: null\n"
	if string(b) != want {
		t.Fatalf("yaml = %q, want %q", b, want)
	}
}

func TestValueString(t *testing.T) {
	cases := map[Value]string{
		NullValue():         "null",
		NumberValue(3):      "3",
		NumberValue(0.1):    "0.1",
		StringValue("cat"):  "cat",
		NumberValue(-1.5e9): "-1500000000",
	}
	for v, want := range cases {
		if got := v.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
