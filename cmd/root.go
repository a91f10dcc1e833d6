package cmd

import (
	"fmt"
	"os"

	"github.com/KaramelBytes/datasight-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/datasight-cli/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "datasight",
	Short: "DataSight CLI: profile CSV datasets and check ML readiness",
	Long: `DataSight parses CSV files, infers a data type for every column, computes
descriptive statistics and missing-value counts, and renders a plain-text report
with a heuristic machine-learning readiness assessment. The same engine is
available over HTTP through the serve command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.datasight/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = cfgpkg.Default()
		return
	}
	cfg = c
}

// settings returns the loaded configuration or the defaults.
func settings() *cfgpkg.Global {
	if cfg == nil {
		return cfgpkg.Default()
	}
	return cfg
}

func newReporter() *analysis.Reporter {
	rp := analysis.NewReporter()
	if layout := settings().ReportDateLayout; layout != "" {
		rp.DateLayout = layout
	}
	return rp
}

func debugf(format string, args ...any) {
	if debug {
		fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
	}
}
