package cmd

import (
	"github.com/KaramelBytes/datasight-cli/internal/analysis"
	"github.com/spf13/cobra"
)

var prvRows int

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Show the dimensions and the first and last rows of a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		n := prvRows
		if n <= 0 {
			n = settings().PreviewRows
		}
		return analysis.BuildPreview(ds.Name, ds.Rows, n).Render(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().IntVar(&prvRows, "rows", 0, "rows to show from each end (default from config)")
}
