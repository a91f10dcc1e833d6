package analysis

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/KaramelBytes/datasight-cli/internal/parser"
)

// DefaultPreviewRows is how many leading and trailing rows a preview shows.
const DefaultPreviewRows = 5

// NullCell is how a missing value is displayed in previews.
const NullCell = "—"

// Preview is the first and last rows of a dataset with its dimensions.
type Preview struct {
	Filename     string       `json:"filename" yaml:"filename"`
	Headers      []string     `json:"headers" yaml:"headers"`
	TotalRows    int          `json:"totalRows" yaml:"totalRows"`
	TotalColumns int          `json:"totalColumns" yaml:"totalColumns"`
	Head         []parser.Row `json:"head" yaml:"head"`
	Tail         []parser.Row `json:"tail" yaml:"tail"`
}

// BuildPreview takes up to n rows from each end of rows. n <= 0 uses DefaultPreviewRows.
func BuildPreview(filename string, rows []parser.Row, n int) Preview {
	if n <= 0 {
		n = DefaultPreviewRows
	}
	p := Preview{Filename: filename, Headers: []string{}, Head: []parser.Row{}, Tail: []parser.Row{}}
	if len(rows) == 0 {
		return p
	}
	p.Headers = rows[0].Keys()
	p.TotalRows = len(rows)
	p.TotalColumns = len(p.Headers)
	k := n
	if k > len(rows) {
		k = len(rows)
	}
	p.Head = rows[:k:k]
	p.Tail = rows[len(rows)-k:]
	return p
}

// Render writes the overview and both row tables as aligned text.
func (p Preview) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Dataset: %s\nTotal Rows: %d\nTotal Columns: %d\n", p.Filename, p.TotalRows, p.TotalColumns); err != nil {
		return err
	}
	if p.TotalRows == 0 {
		return nil
	}
	if err := p.renderTable(w, fmt.Sprintf("First %d Rows", len(p.Head)), p.Head); err != nil {
		return err
	}
	return p.renderTable(w, fmt.Sprintf("Last %d Rows", len(p.Tail)), p.Tail)
}

func (p Preview) renderTable(w io.Writer, title string, rows []parser.Row) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", title); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(p.Headers, "\t"))
	for _, r := range rows {
		cells := make([]string, len(p.Headers))
		for i, h := range p.Headers {
			v, _ := r.Get(h)
			cells[i] = Cell(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// Cell renders one value for display, using NullCell for null.
func Cell(v parser.Value) string {
	if v.IsNull() {
		return NullCell
	}
	return v.String()
}
