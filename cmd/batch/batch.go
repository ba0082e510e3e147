// Package batch provides the xlcompare batch command for comparing
// every matched workbook triple in one run.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/xlcompare/internal/batch"
	"github.com/klytics/xlcompare/internal/config"
	"github.com/klytics/xlcompare/internal/output"
	"github.com/klytics/xlcompare/internal/progress"
	"github.com/klytics/xlcompare/internal/report"
	"github.com/klytics/xlcompare/internal/scan"
)

// NewCommand returns the batch command.
func NewCommand() *cobra.Command {
	var (
		baseDir      string
		manifestPath string
		outputDir    string
		noReport     bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Compare every matched workbook triple",
		Long: `Runs a comparison for every workbook found in all three of the new/,
prev/, and template/ folders under the base directory, or for every job
listed in a YAML manifest. Annotated workbooks and summary reports are
written to the output directory.

Examples:
  xlcompare batch --dir ./quarterly
  xlcompare batch --manifest jobs.yaml
  xlcompare batch --dir ./quarterly --output-dir ./results --no-report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			verboseFlag, _ := cmd.Flags().GetBool("verbose")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load configuration: %w", err)
			}
			if !cfg.Output.Color {
				color.NoColor = true
			}
			if !jsonFlag && strings.EqualFold(cfg.Output.Format, "json") {
				jsonFlag = true
			}

			jobs, unmatched, err := collectJobs(baseDir, manifestPath)
			if err != nil {
				return err
			}

			if outputDir == "" {
				outputDir = cfg.OutputDir
				if manifestPath == "" && !filepath.IsAbs(outputDir) {
					outputDir = filepath.Join(baseDir, outputDir)
				}
			}

			for _, u := range unmatched {
				fmt.Fprintf(os.Stderr, "Skipping %s\n", u)
			}
			if len(jobs) == 0 {
				fmt.Println("No matching workbooks to compare.")
				return nil
			}

			bar := progress.New("comparing", len(jobs))
			runner := &batch.Runner{
				OutputDir: outputDir,
				Progress: func(done, total int, job batch.Job, sum batch.FileSummary) {
					bar.Set(done, job.Name)
				},
			}
			sum := runner.Run(jobs)
			bar.Finish(fmt.Sprintf("%d files compared, %d differences", len(sum.Files), sum.TotalDifferences))

			if !noReport && (cfg.Report.JSON || cfg.Report.Text) {
				if err := writeReports(sum, outputDir, cfg); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
				}
			}

			if jsonFlag {
				return output.NewWriter(output.FormatJSON).WriteJSON(sum)
			}

			printSummary(sum, outputDir, verboseFlag)
			if sum.FilesFailed > 0 {
				return fmt.Errorf("%d of %d comparisons failed", sum.FilesFailed, len(sum.Files))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseDir, "dir", ".", "Base directory containing new/, prev/, and template/ folders")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "YAML manifest of comparison jobs (overrides --dir)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Destination for annotated workbooks and reports")
	cmd.Flags().BoolVar(&noReport, "no-report", false, "Skip writing summary report files")

	return cmd
}

func collectJobs(baseDir, manifestPath string) ([]batch.Job, []string, error) {
	if manifestPath != "" {
		m, err := batch.LoadManifest(manifestPath)
		if err != nil {
			return nil, nil, err
		}
		return m.Jobs, nil, nil
	}

	res, err := scan.Discover(baseDir)
	if err != nil {
		return nil, nil, err
	}
	return batch.JobsFromScan(res), res.Unmatched, nil
}

func writeReports(sum *batch.RunSummary, dir string, cfg *config.Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create report directory %s: %w", dir, err)
	}
	if cfg.Report.JSON {
		if err := report.WriteJSON(sum, filepath.Join(dir, report.JSONFileName)); err != nil {
			return err
		}
	}
	if cfg.Report.Text {
		if err := report.WriteText(sum, filepath.Join(dir, report.TextFileName)); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(sum *batch.RunSummary, outputDir string, verbose bool) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	for _, f := range sum.Files {
		if f.Status == "completed" {
			green.Printf("✓ %s", f.Name)
			fmt.Printf(" — %d differences (%d numeric, %d text)\n",
				f.TotalDifferences, f.NumericDifferences, f.TextDifferences)
		} else {
			red.Printf("✗ %s", f.Name)
			fmt.Printf(" — %s\n", firstOr(f.Errors, "failed"))
		}
		if verbose {
			names := make([]string, 0, len(f.Sheets))
			for name := range f.Sheets {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				s := f.Sheets[name]
				fmt.Printf("    %s: %d differences (%d cells)\n",
					name, s.Differences, s.CellsCompared)
			}
		}
	}

	fmt.Println()
	bold.Printf("%d files compared, %d differences total\n", len(sum.Files), sum.TotalDifferences)
	fmt.Printf("Results in %s\n", outputDir)
}

func firstOr(list []string, fallback string) string {
	if len(list) > 0 {
		return list[0]
	}
	return fallback
}
