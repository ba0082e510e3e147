// Package watch provides the xlcompare watch command, re-running
// comparisons whenever input workbooks change.
package watch

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/klytics/xlcompare/internal/batch"
	"github.com/klytics/xlcompare/internal/config"
	"github.com/klytics/xlcompare/internal/scan"
	"github.com/klytics/xlcompare/internal/watch"
)

// NewCommand returns the watch command.
func NewCommand() *cobra.Command {
	var (
		baseDir    string
		outputDir  string
		debounceMs int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-compare workbooks when their inputs change",
		Long: `Monitors the new/ and prev/ folders under the base directory and
re-runs the comparison for a workbook whenever its copy in either folder
is created or rewritten. A matched triple must exist in all three of
new/, prev/, and template/ for a change to trigger a re-compare.

Runs until interrupted (Ctrl+C).

Examples:
  xlcompare watch --dir ./quarterly
  xlcompare watch --dir ./quarterly --debounce 1000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load configuration: %w", err)
			}
			if debounceMs <= 0 {
				debounceMs = cfg.Watch.DebounceMs
			}
			if outputDir == "" {
				outputDir = cfg.OutputDir
				if !filepath.IsAbs(outputDir) {
					outputDir = filepath.Join(baseDir, outputDir)
				}
			}

			runner := &batch.Runner{OutputDir: outputDir}

			w, err := watch.New(watch.Config{BaseDir: baseDir, DebounceMs: debounceMs})
			if err != nil {
				return err
			}
			w.Handler = func(workbook string) error {
				job := batch.Job{
					Name:     workbook,
					New:      filepath.Join(baseDir, scan.NewDir, workbook),
					Previous: filepath.Join(baseDir, scan.PrevDir, workbook),
					Template: filepath.Join(baseDir, scan.TemplateDir, workbook),
				}
				for _, p := range []string{job.Previous, job.Template} {
					if _, err := os.Stat(p); err != nil {
						return fmt.Errorf("no matched triple for %s: missing %s", workbook, p)
					}
				}
				fs := runner.RunJob(job)
				if fs.Status != "completed" {
					return fmt.Errorf("%s", firstOr(fs.Errors, "comparison failed"))
				}
				w.Logger.Printf("%s: %d differences → %s", workbook, fs.TotalDifferences, fs.Output)
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return w.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&baseDir, "dir", ".", "Base directory containing new/, prev/, and template/ folders")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Destination for annotated workbooks")
	cmd.Flags().IntVar(&debounceMs, "debounce", 0, "Debounce window in milliseconds (default from config)")

	return cmd
}

func firstOr(list []string, fallback string) string {
	if len(list) > 0 {
		return list[0]
	}
	return fallback
}
