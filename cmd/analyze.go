package cmd

import (
	"fmt"

	"github.com/KaramelBytes/datasight-cli/internal/analysis"
	"github.com/KaramelBytes/datasight-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaFormat     string
	anaOutputPath string
	anaSave       bool
	anaOutDir     string
	anaPreview    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a CSV file and print a report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		format := anaFormat
		if format == "" {
			format = settings().OutputFormat
		}
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		rp := newReporter()

		if anaPreview {
			p := analysis.BuildPreview(ds.Name, ds.Rows, settings().PreviewRows)
			if err := p.Render(out); err != nil {
				return err
			}
			fmt.Fprintln(out)
		}

		body, err := render(ds, format, rp)
		if err != nil {
			return err
		}
		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, body); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(out, "✓ Wrote analysis to %s\n", anaOutputPath)
		} else {
			out.Write(body)
		}

		if anaSave {
			path, err := saveReport(ds, outputDir(anaOutDir), rp)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Saved report to %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&anaFormat, "format", "", "output format: text | json | yaml (default from config)")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the output instead of stdout")
	analyzeCmd.Flags().BoolVar(&anaSave, "save", false, "save the text report as <name>_analysis_report.txt")
	analyzeCmd.Flags().StringVar(&anaOutDir, "out-dir", "", "directory for --save (default from config, then current dir)")
	analyzeCmd.Flags().BoolVar(&anaPreview, "preview", false, "print the first and last rows before the report")
}
