package benchmarks

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/xlcompare/internal/diff"
	"github.com/klytics/xlcompare/internal/xlsx"
)

// --- Value classification benchmarks ---

func BenchmarkClassifyNumber(b *testing.B) {
	for i := 0; i < b.N; i++ {
		diff.Classify("1234.56", true)
	}
}

func BenchmarkClassifyFormattedText(b *testing.B) {
	for i := 0; i < b.N; i++ {
		diff.Classify("$1,234.56", false)
	}
}

// --- Reconcile benchmarks ---

func BenchmarkReconcileEqual(b *testing.B) {
	newV := diff.Number(100)
	prevV := diff.Number(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		diff.Reconcile(newV, prevV)
	}
}

func BenchmarkReconcileNumeric(b *testing.B) {
	newV := diff.Number(150)
	prevV := diff.Number(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		diff.Reconcile(newV, prevV)
	}
}

func BenchmarkReconcileText(b *testing.B) {
	newV := diff.Text("Approved")
	prevV := diff.Text("Pending")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		diff.Reconcile(newV, prevV)
	}
}

// --- Sheet comparison benchmarks ---

type benchGrid struct {
	rows, cols int
	cells      map[[2]int]diff.Value
}

func (g *benchGrid) Extent() (int, int) { return g.rows, g.cols }

func (g *benchGrid) Cell(row, col int) (diff.Value, error) {
	if v, ok := g.cells[[2]int{row, col}]; ok {
		return v, nil
	}
	return diff.Empty, nil
}

type discardWriter struct{}

func (discardWriter) SetCell(row, col int, v diff.Value, h diff.Highlight) error { return nil }

func makeGrid(rows, cols int, offset float64) *benchGrid {
	g := &benchGrid{rows: rows, cols: cols, cells: make(map[[2]int]diff.Value)}
	for r := 1; r <= rows; r++ {
		for c := 1; c <= cols; c++ {
			g.cells[[2]int{r, c}] = diff.Number(float64(r*c) + offset)
		}
	}
	return g
}

func BenchmarkCompareSheets100x20(b *testing.B) {
	newG := makeGrid(100, 20, 1)
	prevG := makeGrid(100, 20, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		diff.CompareSheets(newG, prevG, discardWriter{})
	}
}

func BenchmarkCompareSheetsIdentical(b *testing.B) {
	newG := makeGrid(100, 20, 0)
	prevG := makeGrid(100, 20, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		diff.CompareSheets(newG, prevG, discardWriter{})
	}
}

// --- End-to-end file benchmarks ---

func writeBenchWorkbook(b *testing.B, path string, offset float64) {
	b.Helper()
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Data")
	for r := 1; r <= 50; r++ {
		for c := 1; c <= 10; c++ {
			cell, _ := excelize.CoordinatesToCellName(c, r)
			f.SetCellValue("Data", cell, float64(r*c)+offset)
		}
	}
	if err := f.SaveAs(path); err != nil {
		b.Fatal(err)
	}
	f.Close()
}

func BenchmarkCompareFiles(b *testing.B) {
	dir := b.TempDir()
	newPath := filepath.Join(dir, "new.xlsx")
	prevPath := filepath.Join(dir, "prev.xlsx")
	tplPath := filepath.Join(dir, "template.xlsx")
	writeBenchWorkbook(b, newPath, 1)
	writeBenchWorkbook(b, prevPath, 0)
	writeBenchWorkbook(b, tplPath, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out := filepath.Join(dir, fmt.Sprintf("out_%d.xlsx", i))
		if _, err := xlsx.CompareFiles(newPath, prevPath, tplPath, out); err != nil {
			b.Fatal(err)
		}
	}
}
