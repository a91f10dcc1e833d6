package analysis

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/KaramelBytes/datasight-cli/internal/parser"
	"gopkg.in/yaml.v3"
)

func column(vals ...string) []parser.Value {
	out := make([]parser.Value, len(vals))
	for i, v := range vals {
		out[i] = parser.Coerce(v)
	}
	return out
}

func TestDetectDataType(t *testing.T) {
	cases := []struct {
		name string
		in   []parser.Value
		want DataType
	}{
		{"numeric many", column("1", "2", "2", "null", "3"), Numerical},
		{"numeric two distinct", column("0", "1", "0", "1"), Binary},
		{"numeric single distinct", column("5", "5", "5"), Numerical},
		{"text two distinct", column("yes", "no", "yes"), Binary},
		{"mixed two distinct", column("1", "yes", "1"), Binary},
		{"mixed many", column("1", "2", "x"), Categorical},
		{"text many", column("a", "b", "c", "d"), Categorical},
		{"text one distinct", column("a", "a"), Categorical},
		{"all null", column("", "null", "NaN"), Categorical},
		{"empty", nil, Categorical},
		{"many distinct labels", column("a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"), Categorical},
	}
	for _, c := range cases {
		if got := DetectDataType(c.in); got != c.want {
			t.Errorf("%s: got %s, want %s", c.name, got, c.want)
		}
	}
}

func TestAnalyzeDatasetColumnProfiles(t *testing.T) {
	rows := parser.ParseCSV(strings.Join([]string{
		"id,flag,city,count",
		"1,0,Paris,1",
		"2,1,Rome,2",
		"3,0,Oslo,2",
		"4,1,,null",
		"5,0,Rome,3",
	}, "\n"))
	a := AnalyzeDataset(rows)

	if a.RowCount != 5 || a.ColumnCount != 4 {
		t.Fatalf("unexpected dims: rows=%d cols=%d", a.RowCount, a.ColumnCount)
	}
	if !reflect.DeepEqual(a.NumericalColumns, []string{"id", "count"}) {
		t.Fatalf("numerical = %v", a.NumericalColumns)
	}
	if !reflect.DeepEqual(a.BinaryColumns, []string{"flag"}) {
		t.Fatalf("binary = %v", a.BinaryColumns)
	}
	if !reflect.DeepEqual(a.CategoricalColumns, []string{"city"}) {
		t.Fatalf("categorical = %v", a.CategoricalColumns)
	}

	count, _ := a.Column("count")
	if count.NullCount != 1 || count.UniqueCount != 3 {
		t.Fatalf("count profile: %+v", count)
	}
	if count.Stats == nil || count.Stats.Mean != 2 || count.Stats.Median != 2 {
		t.Fatalf("count stats: %+v", count.Stats)
	}
	if count.UniqueValues != nil {
		t.Fatalf("numerical column should not carry unique values: %v", count.UniqueValues)
	}

	flag, _ := a.Column("flag")
	want := []parser.Value{parser.NumberValue(0), parser.NumberValue(1)}
	if !reflect.DeepEqual(flag.UniqueValues, want) {
		t.Fatalf("flag unique values = %v", flag.UniqueValues)
	}
	if flag.Stats == nil || flag.Stats.Max != 1 {
		t.Fatalf("numeric binary column should carry stats: %+v", flag.Stats)
	}

	city, _ := a.Column("city")
	if city.UniqueCount != 3 || city.NullCount != 1 {
		t.Fatalf("city profile: %+v", city)
	}
	wantCities := []parser.Value{parser.StringValue("Paris"), parser.StringValue("Rome"), parser.StringValue("Oslo")}
	if !reflect.DeepEqual(city.UniqueValues, wantCities) {
		t.Fatalf("city samples = %v", city.UniqueValues)
	}
	if city.Stats != nil {
		t.Fatalf("categorical column should not carry stats")
	}

	wantMissing := MissingSummary{{Column: "city", Count: 1}, {Column: "count", Count: 1}}
	if !reflect.DeepEqual(a.MissingValues, wantMissing) {
		t.Fatalf("missing = %v", a.MissingValues)
	}
}

func TestAnalyzeDatasetPartitionsCoverHeaders(t *testing.T) {
	rows := parser.ParseCSV("a,b,c,d,e\n1,x,1,,q\n2,y,0,,r\n3,x,1,,s\n")
	a := AnalyzeDataset(rows)
	seen := map[string]int{}
	for _, group := range [][]string{a.NumericalColumns, a.CategoricalColumns, a.BinaryColumns} {
		for _, n := range group {
			seen[n]++
		}
	}
	for _, h := range rows[0].Keys() {
		if seen[h] != 1 {
			t.Fatalf("column %s assigned %d times", h, seen[h])
		}
	}
	d, _ := a.Column("d")
	if d.DataType != Categorical || d.UniqueCount != 0 || d.NullCount != 3 {
		t.Fatalf("all-null column profile: %+v", d)
	}
}

func TestAnalyzeDatasetCategoricalSampleCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("label\n")
	for i := 0; i < 15; i++ {
		b.WriteString(string(rune('a'+i)) + "\n")
	}
	a := AnalyzeDataset(parser.ParseCSV(b.String()))
	col := a.Columns[0]
	if col.UniqueCount != 15 {
		t.Fatalf("unique count = %d", col.UniqueCount)
	}
	if len(col.UniqueValues) != MaxCategoricalSamples {
		t.Fatalf("expected %d samples, got %d", MaxCategoricalSamples, len(col.UniqueValues))
	}
	if col.UniqueValues[0] != parser.StringValue("a") || col.UniqueValues[9] != parser.StringValue("j") {
		t.Fatalf("samples not in first-seen order: %v", col.UniqueValues)
	}
}

func TestAnalyzeDatasetOneBadValueDemotesColumn(t *testing.T) {
	a := AnalyzeDataset(parser.ParseCSV("v\n1\n2\n3\nabc\n"))
	if a.Columns[0].DataType != Categorical {
		t.Fatalf("expected categorical, got %s", a.Columns[0].DataType)
	}
}

func TestAnalyzeDatasetEmpty(t *testing.T) {
	a := AnalyzeDataset(nil)
	if a.RowCount != 0 || a.ColumnCount != 0 {
		t.Fatalf("expected zero dims, got %+v", a)
	}
	if len(a.Columns) != 0 || len(a.NumericalColumns) != 0 || len(a.CategoricalColumns) != 0 || len(a.BinaryColumns) != 0 {
		t.Fatalf("expected empty partitions, got %+v", a)
	}
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"rowCount":0,"columnCount":0,"columns":[],"missingValuesSummary":{},"numericalColumns":[],"categoricalColumns":[],"binaryColumns":[]}`
	if string(b) != want {
		t.Fatalf("json = %s", b)
	}
	if got := AnalyzeDataset(parser.ParseCSV("")); !reflect.DeepEqual(got, a) {
		t.Fatalf("empty text should analyze like empty rows: %+v", got)
	}
}

func TestAnalyzeDatasetDeterministic(t *testing.T) {
	text := "a,b,c\n1,x,0\n2,y,1\n,z,0\n4,x,\n"
	first, err := json.Marshal(AnalyzeDataset(parser.ParseCSV(text)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := json.Marshal(AnalyzeDataset(parser.ParseCSV(text)))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(again) != string(first) {
			t.Fatalf("analysis differs between runs:\n%s\n%s", first, again)
		}
	}
}

func TestMissingSummaryEncoding(t *testing.T) {
	m := MissingSummary{{Column: "zeta", Count: 2}, {Column: "alpha", Count: 1}}
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"zeta":2,"alpha":1}` {
		t.Fatalf("json = %s", b)
	}
	y, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if string(y) != "zeta: 2\nalpha: 1\n" {
		t.Fatalf("yaml = %q", y)
	}
	if m.Total() != 3 {
		t.Fatalf("total = %d", m.Total())
	}
	if n, ok := m.Get("alpha"); !ok || n != 1 {
		t.Fatalf("get alpha = %d, %v", n, ok)
	}
}

func TestAnalysisJSONWithInfiniteValues(t *testing.T) {
	a := AnalyzeDataset(parser.ParseCSV("v\nInfinity\n1\n2\n"))
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"max":null`) {
		t.Fatalf("expected infinite max to encode as null: %s", b)
	}
	col := a.Columns[0]
	if !math.IsInf(col.Stats.Max, 1) {
		t.Fatalf("expected +Inf max, got %v", col.Stats.Max)
	}
}
