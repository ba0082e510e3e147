// Package report renders batch run summaries as JSON and plain-text
// report files alongside the annotated workbooks.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klytics/xlcompare/internal/batch"
	"github.com/klytics/xlcompare/internal/diff"
)

// Default report filenames inside the output directory.
const (
	JSONFileName = "comparison_summary.json"
	TextFileName = "comparison_report.txt"
)

// WriteAll writes both report files into dir.
func WriteAll(sum *batch.RunSummary, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create report directory %s: %w", dir, err)
	}
	if err := WriteJSON(sum, filepath.Join(dir, JSONFileName)); err != nil {
		return err
	}
	return WriteText(sum, filepath.Join(dir, TextFileName))
}

// WriteJSON writes the machine-readable summary.
func WriteJSON(sum *batch.RunSummary, path string) error {
	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return nil
}

// WriteText writes the human-readable report.
func WriteText(sum *batch.RunSummary, path string) error {
	if err := os.WriteFile(path, []byte(Render(sum)), 0644); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return nil
}

// Render produces the plain-text report body.
func Render(sum *batch.RunSummary) string {
	var b strings.Builder

	b.WriteString("WORKBOOK COMPARISON SUMMARY REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&b, "Comparison completed at: %s\n", sum.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Files processed: %d (%d completed, %d failed)\n", len(sum.Files), sum.FilesCompleted, sum.FilesFailed)
	fmt.Fprintf(&b, "Total differences found: %d\n\n", sum.TotalDifferences)

	if len(sum.Errors) > 0 {
		b.WriteString("ERRORS ENCOUNTERED:\n")
		b.WriteString(strings.Repeat("-", 20) + "\n")
		for _, e := range sum.Errors {
			fmt.Fprintf(&b, "- %s\n", e)
		}
		b.WriteString("\n")
	}

	b.WriteString("FILE DETAILS:\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	for _, f := range sum.Files {
		fmt.Fprintf(&b, "\nFile: %s\n", f.Name)
		fmt.Fprintf(&b, "  Status: %s\n", f.Status)
		if f.Output != "" {
			fmt.Fprintf(&b, "  Output: %s\n", f.Output)
		}
		fmt.Fprintf(&b, "  Sheets processed: %d\n", f.SheetsProcessed)
		fmt.Fprintf(&b, "  Total differences: %d (%d numeric, %d text)\n",
			f.TotalDifferences, f.NumericDifferences, f.TextDifferences)

		if len(f.Sheets) > 0 {
			b.WriteString("  Sheet breakdown:\n")
			for _, name := range sortedSheetNames(f.Sheets) {
				s := f.Sheets[name]
				fmt.Fprintf(&b, "    %s: %d differences (%d numeric, %d text)\n",
					name, s.Differences, s.NumericDiffs, s.TextDiffs)
			}
		}
		if len(f.SkippedSheets) > 0 {
			b.WriteString("  Skipped sheets:\n")
			for _, s := range f.SkippedSheets {
				fmt.Fprintf(&b, "    - %s\n", s)
			}
		}
		if len(f.Errors) > 0 {
			b.WriteString("  Errors:\n")
			for _, e := range f.Errors {
				fmt.Fprintf(&b, "    - %s\n", e)
			}
		}
	}

	return b.String()
}

func sortedSheetNames(m map[string]diff.SheetStats) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
