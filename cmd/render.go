package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/datasight-cli/internal/analysis"
	"github.com/KaramelBytes/datasight-cli/internal/parser"
	"github.com/KaramelBytes/datasight-cli/internal/utils"
	"gopkg.in/yaml.v3"
)

// analysisDocument is the machine-readable form of one analyzed file.
type analysisDocument struct {
	Filename  string                    `json:"filename" yaml:"filename"`
	Analysis  *analysis.DatasetAnalysis `json:"analysis" yaml:"analysis"`
	Readiness analysis.Readiness        `json:"readiness" yaml:"readiness"`
	Messages  []string                  `json:"messages" yaml:"messages"`
}

// dataset is a parsed and analyzed input file.
type dataset struct {
	Path     string
	Name     string
	Rows     []parser.Row
	Analysis *analysis.DatasetAnalysis
}

func loadDataset(path string) (*dataset, error) {
	rows, err := parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a := analysis.AnalyzeDataset(rows)
	debugf("%s: %d rows, %d columns", path, a.RowCount, a.ColumnCount)
	return &dataset{Path: path, Name: filepath.Base(path), Rows: rows, Analysis: a}, nil
}

// render formats the dataset as text, json or yaml.
func render(ds *dataset, format string, rp *analysis.Reporter) ([]byte, error) {
	switch format {
	case "", "text":
		return []byte(rp.Generate(ds.Name, ds.Rows, ds.Analysis) + "\n"), nil
	case "json", "yaml":
		r := analysis.AssessReadiness(ds.Analysis)
		doc := analysisDocument{Filename: ds.Name, Analysis: ds.Analysis, Readiness: r, Messages: r.Messages()}
		if format == "json" {
			b, err := utils.PrettyJSON(doc)
			if err != nil {
				return nil, err
			}
			return append(b, '\n'), nil
		}
		b, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported --format: %s (use text, json or yaml)", format)
	}
}

// saveReport writes the text report next to the other reports in dir and
// returns the written path.
func saveReport(ds *dataset, dir string, rp *analysis.Reporter) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := utils.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, analysis.ReportFilename(ds.Name))
	if err := utils.SafeWriteFile(path, []byte(rp.Generate(ds.Name, ds.Rows, ds.Analysis))); err != nil {
		return "", err
	}
	return path, nil
}

func outputDir(flag string) string {
	if flag != "" {
		return flag
	}
	if d := settings().OutputDir; d != "" {
		return d
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
