package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
)

var (
	abFormat  string
	abWorkers int
	abSave    bool
	abOutDir  string
	abQuiet   bool
)

type batchResult struct {
	ds   *dataset
	body []byte
	err  error
}

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple CSV files in parallel",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		format := abFormat
		if format == "" {
			format = settings().OutputFormat
		}
		workers := abWorkers
		if workers <= 0 {
			workers = settings().BatchWorkers
		}
		rp := newReporter()
		debugf("analyzing %d files with %d workers", len(files), workers)

		results := make([]batchResult, len(files))
		p := pool.New().WithErrors().WithMaxGoroutines(workers)
		for i, path := range files {
			i, path := i, path
			p.Go(func() error {
				ds, err := loadDataset(path)
				if err != nil {
					results[i].err = err
					return err
				}
				results[i].ds = ds
				if !abSave {
					body, err := render(ds, format, rp)
					if err != nil {
						results[i].err = err
						return err
					}
					results[i].body = body
				}
				return nil
			})
		}
		poolErr := p.Wait()

		dir := outputDir(abOutDir)
		total := len(files)
		failed := 0
		for i, res := range results {
			if !abQuiet {
				fmt.Fprintf(out, "[%d/%d] %s\n", i+1, total, filepath.Base(files[i]))
			}
			if res.err != nil {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", res.err)
				continue
			}
			if abSave {
				path, err := saveReport(res.ds, dir, rp)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", files[i], err)
					continue
				}
				if !abQuiet {
					fmt.Fprintf(out, "✓ Saved report to %s\n", path)
				}
				continue
			}
			out.Write(res.body)
		}
		if poolErr != nil {
			return fmt.Errorf("%d of %d files failed: %w", failed, total, poolErr)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, total)
		}
		return nil
	},
}

// expandInputs resolves globs and literal paths into a sorted, de-duplicated list.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVar(&abFormat, "format", "", "output format: text | json | yaml (default from config)")
	analyzeBatchCmd.Flags().IntVar(&abWorkers, "workers", 0, "number of files analyzed concurrently (default from config)")
	analyzeBatchCmd.Flags().BoolVar(&abSave, "save", false, "save one text report per file instead of printing")
	analyzeBatchCmd.Flags().StringVar(&abOutDir, "out-dir", "", "directory for --save (default from config, then current dir)")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
}
