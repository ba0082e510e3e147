package diff

import "fmt"

// Grid is read access to one worksheet.
type Grid interface {
	// Extent returns the reported bounding size in rows and columns.
	// Reads beyond the extent yield Empty, never an error.
	Extent() (rows, cols int)
	// Cell returns the value at a 1-based coordinate.
	Cell(row, col int) (Value, error)
}

// CellWriter is annotation access to one output worksheet.
type CellWriter interface {
	// SetCell writes a rendered value and applies a highlight at a
	// 1-based coordinate.
	SetCell(row, col int, v Value, h Highlight) error
}

// SheetStats are the per-sheet comparison counters.
type SheetStats struct {
	CellsCompared int      `json:"cells_compared"`
	Differences   int      `json:"differences_count"`
	NumericDiffs  int      `json:"numeric_differences"`
	TextDiffs     int      `json:"text_differences"`
	Warnings      []string `json:"warnings,omitempty"`
}

func (s *SheetStats) merge(e *Entry) {
	s.Differences++
	if e.NumericDiff() {
		s.NumericDiffs++
	} else {
		s.TextDiffs++
	}
}

func (s *SheetStats) warn(format string, args ...interface{}) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}

// CompareSheets walks the union bounding box of the two input sheets in
// row-major order, reconciling every coordinate and annotating out where
// a difference is found. out may be nil for a dry scan. A failure at a
// single coordinate is recorded as a warning and never aborts the sheet.
func CompareSheets(newG, prevG Grid, out CellWriter) ([]Entry, SheetStats) {
	var (
		stats   SheetStats
		entries []Entry
	)

	newRows, newCols := newG.Extent()
	prevRows, prevCols := prevG.Extent()
	maxRow := max(max(newRows, prevRows), 1)
	maxCol := max(max(newCols, prevCols), 1)

	for row := 1; row <= maxRow; row++ {
		for col := 1; col <= maxCol; col++ {
			stats.CellsCompared++

			newV, err := readCell(newG, row, col)
			if err != nil {
				stats.warn("could not read new cell (%d,%d): %v", row, col, err)
				continue
			}
			prevV, err := readCell(prevG, row, col)
			if err != nil {
				stats.warn("could not read previous cell (%d,%d): %v", row, col, err)
				continue
			}

			e := Reconcile(newV, prevV)
			if e == nil {
				continue
			}
			e.Row, e.Col = row, col

			if out != nil {
				if err := out.SetCell(row, col, e.Output, e.Highlight); err != nil {
					stats.warn("could not annotate cell (%d,%d): %v", row, col, err)
					continue
				}
			}

			entries = append(entries, *e)
			stats.merge(e)
		}
	}

	return entries, stats
}

// readCell treats coordinates beyond the grid's extent as Empty.
func readCell(g Grid, row, col int) (Value, error) {
	rows, cols := g.Extent()
	if row > rows || col > cols {
		return Empty, nil
	}
	return g.Cell(row, col)
}
