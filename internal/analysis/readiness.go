package analysis

import (
	"fmt"

	"github.com/KaramelBytes/datasight-cli/internal/utils"
)

const (
	// MinRowsForML is the row count below which a dataset is flagged as small.
	MinRowsForML = 100
	// HighMissingPercent is the overall missing-cell percentage above which a warning is raised.
	HighMissingPercent = 10.0
)

// MissingValuesNote is shown alongside the assessment whenever any cell is missing.
const MissingValuesNote = "Note: Missing values detected. Consider data cleaning or imputation strategies."

// Readiness is a heuristic verdict on whether a dataset can feed model training.
type Readiness struct {
	RowCount     int  `json:"rowCount" yaml:"rowCount"`
	SizeAdequate bool `json:"sizeAdequate" yaml:"sizeAdequate"`
	// MissingPercent is missing cells over rowCount*columnCount, in percent.
	MissingPercent float64 `json:"missingPercent" yaml:"missingPercent"`
	HighMissing    bool    `json:"highMissing" yaml:"highMissing"`
	HasMissing     bool    `json:"hasMissing" yaml:"hasMissing"`
}

// AssessReadiness derives the readiness verdict from an analysis.
func AssessReadiness(a *DatasetAnalysis) Readiness {
	r := Readiness{
		RowCount:     a.RowCount,
		SizeAdequate: a.RowCount >= MinRowsForML,
		HasMissing:   len(a.MissingValues) > 0,
	}
	if cells := a.RowCount * a.ColumnCount; cells > 0 {
		r.MissingPercent = float64(a.MissingValues.Total()) / float64(cells) * 100
	}
	r.HighMissing = r.MissingPercent > HighMissingPercent
	return r
}

// SizeMessage is the row-count line of the assessment.
func (r Readiness) SizeMessage() string {
	if !r.SizeAdequate {
		return fmt.Sprintf("Warning: Dataset may be too small for reliable ML models (%d rows)", r.RowCount)
	}
	return fmt.Sprintf("Dataset size is adequate for machine learning (%d rows)", r.RowCount)
}

// MissingMessage is the high-missing warning, or "" when the ratio is acceptable.
func (r Readiness) MissingMessage() string {
	if !r.HighMissing {
		return ""
	}
	return fmt.Sprintf("Warning: High percentage of missing values (%s%%)", utils.ToFixed(r.MissingPercent, 2))
}

// Messages lists every assessment line in report order.
func (r Readiness) Messages() []string {
	out := []string{r.SizeMessage()}
	if m := r.MissingMessage(); m != "" {
		out = append(out, m)
	}
	return out
}
