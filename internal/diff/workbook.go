package diff

import (
	"fmt"
	"sort"
	"strings"
)

// Workbook is read access to an input workbook.
type Workbook interface {
	// SheetNames returns the workbook's sheet names in document order.
	SheetNames() []string
	// Grid returns read access to one sheet.
	Grid(name string) (Grid, error)
}

// OutputWorkbook is the mutable, template-derived output artifact. It
// must be a fully independent copy of the template: annotating it never
// touches the template itself.
type OutputWorkbook interface {
	SheetNames() []string
	// Writer returns annotation access to one sheet.
	Writer(name string) (CellWriter, error)
}

// Stats aggregates counters across a whole workbook comparison.
type Stats struct {
	SheetsCompared int `json:"sheets_compared"`
	CellsCompared  int `json:"cells_compared"`
	Differences    int `json:"total_differences"`
	NumericDiffs   int `json:"numeric_differences"`
	TextDiffs      int `json:"text_differences"`
}

// Result is the outcome of one three-way workbook comparison.
type Result struct {
	Stats Stats `json:"stats"`
	// Sheets holds per-sheet counters keyed by sheet name.
	Sheets map[string]SheetStats `json:"sheet_details"`
	// SkippedSheets lists sheets absent from at least one of the three
	// workbooks, with the missing roles noted.
	SkippedSheets []string `json:"skipped_sheets,omitempty"`
	// Warnings are non-fatal conditions encountered during the scan.
	Warnings []string `json:"warnings,omitempty"`
}

func (r *Result) warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// CompareWorkbooks resolves the sheets common to all three workbooks and
// diffs each in sorted name order, annotating out as it goes. Sheets
// missing from any side are skipped and reported; a sheet that fails to
// open is skipped with a warning. An empty intersection yields a
// zero-difference result, not an error.
func CompareWorkbooks(newWB, prevWB Workbook, out OutputWorkbook) *Result {
	res := &Result{Sheets: make(map[string]SheetStats)}

	common, skipped := commonSheets(newWB.SheetNames(), prevWB.SheetNames(), out.SheetNames())
	res.SkippedSheets = skipped
	for _, s := range skipped {
		res.warn("skipping sheet %s", s)
	}
	if len(common) == 0 {
		res.warn("no sheets are common to the new, previous, and template workbooks")
		return res
	}

	for _, name := range common {
		newG, err := newWB.Grid(name)
		if err != nil {
			res.warn("skipping sheet %q: %v", name, err)
			continue
		}
		prevG, err := prevWB.Grid(name)
		if err != nil {
			res.warn("skipping sheet %q: %v", name, err)
			continue
		}
		w, err := out.Writer(name)
		if err != nil {
			res.warn("skipping sheet %q: %v", name, err)
			continue
		}

		_, stats := CompareSheets(newG, prevG, w)
		res.Sheets[name] = stats
		res.Stats.SheetsCompared++
		res.Stats.CellsCompared += stats.CellsCompared
		res.Stats.Differences += stats.Differences
		res.Stats.NumericDiffs += stats.NumericDiffs
		res.Stats.TextDiffs += stats.TextDiffs
	}

	return res
}

// commonSheets returns the sorted intersection of the three name sets,
// plus diagnostics for every sheet missing from at least one side.
func commonSheets(newNames, prevNames, templateNames []string) (common, skipped []string) {
	inNew := toSet(newNames)
	inPrev := toSet(prevNames)
	inTemplate := toSet(templateNames)

	seen := make(map[string]bool)
	for _, name := range append(append(append([]string{}, newNames...), prevNames...), templateNames...) {
		if seen[name] {
			continue
		}
		seen[name] = true

		var missing []string
		if !inNew[name] {
			missing = append(missing, "new")
		}
		if !inPrev[name] {
			missing = append(missing, "previous")
		}
		if !inTemplate[name] {
			missing = append(missing, "template")
		}
		if len(missing) == 0 {
			common = append(common, name)
		} else {
			skipped = append(skipped, fmt.Sprintf("%q (missing from: %s)", name, strings.Join(missing, ", ")))
		}
	}

	sort.Strings(common)
	sort.Strings(skipped)
	return common, skipped
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
