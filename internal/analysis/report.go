package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/datasight-cli/internal/parser"
	"github.com/KaramelBytes/datasight-cli/internal/utils"
)

// DefaultDateLayout mirrors an en-US short date, e.g. 3/14/2025.
const DefaultDateLayout = "1/2/2006"

// reportSampleValues is how many stored distinct values the report prints per column.
const reportSampleValues = 5

// Reporter renders the plain-text analysis report.
type Reporter struct {
	// Now supplies the report date; defaults to time.Now.
	Now func() time.Time
	// DateLayout formats the date line; defaults to DefaultDateLayout.
	DateLayout string
}

// NewReporter returns a Reporter using the wall clock and DefaultDateLayout.
func NewReporter() *Reporter {
	return &Reporter{Now: time.Now, DateLayout: DefaultDateLayout}
}

// GenerateReport renders the report dated today.
func GenerateReport(filename string, rows []parser.Row, a *DatasetAnalysis) string {
	return NewReporter().Generate(filename, rows, a)
}

// ReportFilename is the download name offered for a dataset's report.
func ReportFilename(datasetName string) string {
	return strings.Replace(datasetName, ".csv", "", 1) + "_analysis_report.txt"
}

// Generate renders the report. Apart from the date line the output depends
// only on filename and a.
func (rp *Reporter) Generate(filename string, _ []parser.Row, a *DatasetAnalysis) string {
	now := time.Now
	if rp.Now != nil {
		now = rp.Now
	}
	layout := rp.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}

	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("DATASET ANALYSIS REPORT")
	add("========================\n")
	add("Dataset: %s", filename)
	add("Date: %s\n", now().Format(layout))

	add("OVERVIEW")
	add("--------")
	add("Total Rows: %d", a.RowCount)
	add("Total Columns: %d\n", a.ColumnCount)

	add("DATA TYPES")
	add("----------")
	add("Numerical Columns (%d): %s", len(a.NumericalColumns), joinOrNone(a.NumericalColumns))
	add("Categorical Columns (%d): %s", len(a.CategoricalColumns), joinOrNone(a.CategoricalColumns))
	add("Binary Columns (%d): %s\n", len(a.BinaryColumns), joinOrNone(a.BinaryColumns))

	add("MISSING VALUES")
	add("--------------")
	if len(a.MissingValues) == 0 {
		add("No missing values detected.\n")
	} else {
		for _, mc := range a.MissingValues {
			pct := float64(mc.Count) / float64(a.RowCount) * 100
			add("%s: %d (%s%%)", mc.Column, mc.Count, utils.ToFixed(pct, 2))
		}
		add("")
	}

	add("COLUMN DETAILS")
	add("--------------")
	for _, col := range a.Columns {
		add("\n%s (%s)", col.Name, col.DataType)
		add("  Unique Values: %d", col.UniqueCount)
		add("  Missing Values: %d", col.NullCount)
		if col.DataType == Numerical {
			st := Stats{}
			if col.Stats != nil {
				st = *col.Stats
			}
			add("  Min: %s", utils.ToFixed(st.Min, 2))
			add("  Max: %s", utils.ToFixed(st.Max, 2))
			add("  Mean: %s", utils.ToFixed(st.Mean, 2))
			add("  Median: %s", utils.ToFixed(st.Median, 2))
			add("  Std Dev: %s", utils.ToFixed(st.Std, 2))
		} else if len(col.UniqueValues) > 0 {
			add("  Sample Values: %s", joinValues(col.UniqueValues, reportSampleValues))
		}
	}

	add("\n\nML READINESS ASSESSMENT")
	add("-----------------------")
	for _, m := range AssessReadiness(a).Messages() {
		add("%s", m)
	}

	return strings.Join(lines, "\n")
}

func joinOrNone(names []string) string {
	if s := strings.Join(names, ", "); s != "" {
		return s
	}
	return "None"
}

func joinValues(values []parser.Value, limit int) string {
	if len(values) > limit {
		values = values[:limit]
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
