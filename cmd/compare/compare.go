// Package compare provides the xlcompare compare command for a single
// workbook triple.
package compare

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/xlcompare/internal/diff"
	"github.com/klytics/xlcompare/internal/output"
	"github.com/klytics/xlcompare/internal/xlsx"
)

// NewCommand returns the compare command.
func NewCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "compare <new.xlsx> <previous.xlsx> <template.xlsx>",
		Short: "Compare one workbook triple",
		Long: `Compares the new workbook against the previous one and writes an
annotated copy of the template: numeric differences become deltas with a
red highlight, text differences show the new value in yellow, and type
transitions are marked orange.

Examples:
  xlcompare compare new/q3.xlsx prev/q3.xlsx template/q3.xlsx
  xlcompare compare new/q3.xlsx prev/q3.xlsx template/q3.xlsx -o q3_diff.xlsx`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			for _, p := range args {
				if !strings.HasSuffix(strings.ToLower(p), ".xlsx") {
					return fmt.Errorf("expected an .xlsx file, got %q", p)
				}
			}

			newPath, prevPath, tplPath := args[0], args[1], args[2]
			if outputPath == "" {
				base := strings.TrimSuffix(filepath.Base(newPath), filepath.Ext(newPath))
				outputPath = base + "_COMPARISON.xlsx"
			}

			res, saveErr := xlsx.CompareFiles(newPath, prevPath, tplPath, outputPath)
			if res == nil {
				return saveErr
			}

			if jsonFlag {
				if err := output.NewWriter(output.FormatJSON).WriteJSON(res); err != nil {
					return err
				}
				return saveErr
			}

			printResult(res, outputPath, saveErr)
			return saveErr
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Annotated output workbook path")

	return cmd
}

func printResult(res *diff.Result, outputPath string, saveErr error) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	names := make([]string, 0, len(res.Sheets))
	for name := range res.Sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := res.Sheets[name]
		if s.Differences == 0 {
			fmt.Printf("  %s: no differences (%d cells)\n", name, s.CellsCompared)
			continue
		}
		fmt.Printf("  %s: %d differences (%d numeric, %d text)\n",
			name, s.Differences, s.NumericDiffs, s.TextDiffs)
	}

	for _, s := range res.SkippedSheets {
		yellow.Printf("  skipped %s\n", s)
	}
	for _, w := range res.Warnings {
		yellow.Printf("  warning: %s\n", w)
	}

	fmt.Println()
	bold.Printf("%d sheets compared, %d differences (%d numeric, %d text)\n",
		res.Stats.SheetsCompared, res.Stats.Differences,
		res.Stats.NumericDiffs, res.Stats.TextDiffs)

	if saveErr != nil {
		red.Printf("✗ %s\n", saveErr)
	} else {
		green.Printf("✓ Annotated workbook written to %s\n", outputPath)
	}
}
