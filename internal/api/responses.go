package api

import (
	"time"

	"github.com/KaramelBytes/datasight-cli/internal/analysis"
)

// DatasetResponse describes an analyzed dataset.
type DatasetResponse struct {
	ID        string                    `json:"id,omitempty"`
	Filename  string                    `json:"filename"`
	CreatedAt *time.Time                `json:"createdAt,omitempty"`
	Analysis  *analysis.DatasetAnalysis `json:"analysis"`
	Readiness ReadinessResponse         `json:"readiness"`
	Preview   *analysis.Preview         `json:"preview,omitempty"`
}

// ReadinessResponse is the readiness verdict plus its rendered lines.
type ReadinessResponse struct {
	analysis.Readiness
	Messages []string `json:"messages"`
	Note     string   `json:"note,omitempty"`
}

func readinessResponse(a *analysis.DatasetAnalysis) ReadinessResponse {
	r := analysis.AssessReadiness(a)
	out := ReadinessResponse{Readiness: r, Messages: r.Messages()}
	if r.HasMissing {
		out.Note = analysis.MissingValuesNote
	}
	return out
}
