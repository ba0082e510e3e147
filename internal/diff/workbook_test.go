package diff

import (
	"errors"
	"strings"
	"testing"
)

// memWorkbook is an in-memory Workbook for tests.
type memWorkbook struct {
	order  []string
	sheets map[string]*memGrid
	broken map[string]bool
}

func newMemWorkbook() *memWorkbook {
	return &memWorkbook{sheets: make(map[string]*memGrid), broken: make(map[string]bool)}
}

func (w *memWorkbook) add(name string, g *memGrid) {
	w.order = append(w.order, name)
	w.sheets[name] = g
}

func (w *memWorkbook) SheetNames() []string { return w.order }

func (w *memWorkbook) Grid(name string) (Grid, error) {
	if w.broken[name] {
		return nil, errors.New("sheet index corrupt")
	}
	g, ok := w.sheets[name]
	if !ok {
		return nil, errors.New("no such sheet")
	}
	return g, nil
}

// memOutput is an in-memory OutputWorkbook for tests.
type memOutput struct {
	order   []string
	writers map[string]*memWriter
}

func newMemOutput(names ...string) *memOutput {
	o := &memOutput{writers: make(map[string]*memWriter)}
	for _, n := range names {
		o.order = append(o.order, n)
		o.writers[n] = newMemWriter()
	}
	return o
}

func (o *memOutput) SheetNames() []string { return o.order }

func (o *memOutput) Writer(name string) (CellWriter, error) {
	w, ok := o.writers[name]
	if !ok {
		return nil, errors.New("no such sheet")
	}
	return w, nil
}

func TestCompareWorkbooksCommonSheetsOnly(t *testing.T) {
	newWB := newMemWorkbook()
	prevWB := newMemWorkbook()

	budgetNew := newMemGrid(1, 1)
	budgetNew.set(1, 1, Number(52000))
	budgetPrev := newMemGrid(1, 1)
	budgetPrev.set(1, 1, Number(50000))
	newWB.add("Budget", budgetNew)
	prevWB.add("Budget", budgetPrev)

	// Present in new and previous, absent from the template.
	newWB.add("Scratch", newMemGrid(1, 1))
	prevWB.add("Scratch", newMemGrid(1, 1))

	out := newMemOutput("Budget")
	res := CompareWorkbooks(newWB, prevWB, out)

	if res.Stats.SheetsCompared != 1 {
		t.Errorf("SheetsCompared = %d, want 1", res.Stats.SheetsCompared)
	}
	if res.Stats.Differences != 1 || res.Stats.NumericDiffs != 1 {
		t.Errorf("Stats = %+v, want one numeric difference", res.Stats)
	}
	if len(res.SkippedSheets) != 1 || !strings.Contains(res.SkippedSheets[0], "Scratch") {
		t.Errorf("SkippedSheets = %v, want the Scratch sheet reported", res.SkippedSheets)
	}
	if _, ok := res.Sheets["Scratch"]; ok {
		t.Error("skipped sheet must produce no per-sheet stats")
	}
	if v := out.writers["Budget"].written[[2]int{1, 1}]; v.Num != 2000 {
		t.Errorf("annotated Budget!(1,1) = %v, want 2000", v)
	}
}

func TestCompareWorkbooksNoCommonSheets(t *testing.T) {
	newWB := newMemWorkbook()
	newWB.add("A", newMemGrid(1, 1))
	prevWB := newMemWorkbook()
	prevWB.add("B", newMemGrid(1, 1))

	res := CompareWorkbooks(newWB, prevWB, newMemOutput("C"))

	if res.Stats.Differences != 0 || res.Stats.SheetsCompared != 0 {
		t.Errorf("Stats = %+v, want all zero", res.Stats)
	}
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "no sheets are common") {
			found = true
		}
	}
	if !found {
		t.Errorf("Warnings = %v, want the empty-intersection condition reported", res.Warnings)
	}
}

func TestCompareWorkbooksSheetFailureSkipsSheetOnly(t *testing.T) {
	newWB := newMemWorkbook()
	prevWB := newMemWorkbook()

	bad := newMemGrid(1, 1)
	good := newMemGrid(1, 1)
	good.set(1, 1, Text("x"))
	goodPrev := newMemGrid(1, 1)
	goodPrev.set(1, 1, Text("y"))

	newWB.add("Bad", bad)
	newWB.add("Good", good)
	prevWB.add("Bad", newMemGrid(1, 1))
	prevWB.add("Good", goodPrev)
	newWB.broken["Bad"] = true

	res := CompareWorkbooks(newWB, prevWB, newMemOutput("Bad", "Good"))

	if res.Stats.SheetsCompared != 1 {
		t.Errorf("SheetsCompared = %d, want 1 (the good sheet)", res.Stats.SheetsCompared)
	}
	if res.Stats.Differences != 1 {
		t.Errorf("Differences = %d, want 1", res.Stats.Differences)
	}
	if len(res.Warnings) == 0 {
		t.Error("the failing sheet must be reported")
	}
}

func TestCompareWorkbooksDeterministicOrder(t *testing.T) {
	newWB := newMemWorkbook()
	prevWB := newMemWorkbook()
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		g := newMemGrid(1, 1)
		g.set(1, 1, Text("n-"+name))
		p := newMemGrid(1, 1)
		p.set(1, 1, Text("p-"+name))
		newWB.add(name, g)
		prevWB.add(name, p)
	}

	common, _ := commonSheets(newWB.SheetNames(), prevWB.SheetNames(), []string{"Mid", "Zeta", "Alpha"})
	want := []string{"Alpha", "Mid", "Zeta"}
	for i, name := range want {
		if common[i] != name {
			t.Fatalf("common = %v, want sorted %v", common, want)
		}
	}
}
