// Package xlsx adapts excelize workbooks to the diff engine's Grid,
// Workbook, and OutputWorkbook interfaces.
package xlsx

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/xlcompare/internal/diff"
)

// File wraps an open .xlsx workbook for reading.
type File struct {
	f    *excelize.File
	path string
}

// Open opens an .xlsx workbook for reading.
func Open(path string) (*File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s — check that the path is correct", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	return &File{f: f, path: path}, nil
}

// Close releases the underlying file handle.
func (w *File) Close() error { return w.f.Close() }

// Path returns the path the workbook was opened from.
func (w *File) Path() string { return w.path }

// SheetNames returns the sheet names in document order.
func (w *File) SheetNames() []string { return w.f.GetSheetList() }

// Grid ingests one worksheet into memory, classifying every cell once.
// Natively numeric cells become numbers; everything else stays text.
func (w *File) Grid(name string) (diff.Grid, error) {
	rows, err := w.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", name, err)
	}

	g := &grid{cells: make([][]diff.Value, len(rows)), rows: len(rows)}
	for r, row := range rows {
		if len(row) > g.cols {
			g.cols = len(row)
		}
		vals := make([]diff.Value, len(row))
		for c, raw := range row {
			if raw == "" {
				vals[c] = diff.Empty
				continue
			}
			vals[c] = diff.Classify(raw, w.isNumericCell(name, r+1, c+1))
		}
		g.cells[r] = vals
	}
	return g, nil
}

// isNumericCell reports whether the stored cell type is numeric. Cells
// without an explicit type attribute are numbers in the xlsx format.
func (w *File) isNumericCell(sheet string, row, col int) bool {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false
	}
	ct, err := w.f.GetCellType(sheet, axis)
	if err != nil {
		return false
	}
	return ct == excelize.CellTypeNumber || ct == excelize.CellTypeUnset
}

// grid is an in-memory snapshot of one worksheet.
type grid struct {
	cells [][]diff.Value
	rows  int
	cols  int
}

func (g *grid) Extent() (int, int) { return g.rows, g.cols }

func (g *grid) Cell(row, col int) (diff.Value, error) {
	if row < 1 || col < 1 {
		return diff.Empty, fmt.Errorf("coordinates are 1-based, got (%d,%d)", row, col)
	}
	if row > len(g.cells) {
		return diff.Empty, nil
	}
	r := g.cells[row-1]
	if col > len(r) {
		return diff.Empty, nil
	}
	return r[col-1], nil
}

// Output is the mutable, template-derived output workbook.
type Output struct {
	f      *excelize.File
	styles map[diff.Highlight]int
}

// OpenOutput loads the template into memory as an independent copy.
// The template file on disk is never written; all annotation happens on
// this copy until Save.
func OpenOutput(templatePath string) (*Output, error) {
	f, err := excelize.OpenFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("could not open template %s: %w", templatePath, err)
	}
	return &Output{f: f, styles: make(map[diff.Highlight]int)}, nil
}

// Close releases the underlying file handle.
func (o *Output) Close() error { return o.f.Close() }

// SheetNames returns the template's sheet names in document order.
func (o *Output) SheetNames() []string { return o.f.GetSheetList() }

// Writer returns annotation access to one output sheet.
func (o *Output) Writer(name string) (diff.CellWriter, error) {
	idx, err := o.f.GetSheetIndex(name)
	if err != nil {
		return nil, fmt.Errorf("could not look up sheet %q: %w", name, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("sheet %q not present in template", name)
	}
	return &sheetWriter{out: o, sheet: name}, nil
}

// Save persists the annotated workbook to dest.
func (o *Output) Save(dest string) error {
	if err := o.f.SaveAs(dest); err != nil {
		return fmt.Errorf("could not save %s: %w", dest, err)
	}
	return nil
}

type sheetWriter struct {
	out   *Output
	sheet string
}

func (sw *sheetWriter) SetCell(row, col int, v diff.Value, h diff.Highlight) error {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("invalid cell coordinates (%d,%d): %w", row, col, err)
	}
	if err := sw.out.f.SetCellValue(sw.sheet, axis, cellValue(v)); err != nil {
		return fmt.Errorf("could not set cell %s: %w", axis, err)
	}

	styleID, err := sw.out.styleID(h)
	if err != nil {
		return err
	}
	if err := sw.out.f.SetCellStyle(sw.sheet, axis, axis, styleID); err != nil {
		return fmt.Errorf("could not style cell %s: %w", axis, err)
	}
	return nil
}

func cellValue(v diff.Value) interface{} {
	switch v.Kind {
	case diff.KindNumber:
		return v.Num
	case diff.KindText:
		return v.Raw
	default:
		return ""
	}
}
