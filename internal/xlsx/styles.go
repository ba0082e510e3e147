package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/xlcompare/internal/diff"
)

// highlightStyles maps the engine's named highlight categories to
// concrete cell styles: red fill with white bold text for numeric
// deltas, yellow for text changes, orange for type transitions.
var highlightStyles = map[diff.Highlight]*excelize.Style{
	diff.HighlightNumeric: {
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FF0000"}},
		Font: &excelize.Font{Color: "FFFFFF", Bold: true},
	},
	diff.HighlightText: {
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFF00"}},
		Font: &excelize.Font{Bold: true},
	},
	diff.HighlightTypeChange: {
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFA500"}},
		Font: &excelize.Font{Bold: true},
	},
}

// styleID resolves a highlight to a concrete excelize style, creating
// it on first use and caching the ID for the rest of the workbook.
func (o *Output) styleID(h diff.Highlight) (int, error) {
	if id, ok := o.styles[h]; ok {
		return id, nil
	}
	def, ok := highlightStyles[h]
	if !ok {
		return 0, fmt.Errorf("unknown highlight category %d", h)
	}
	id, err := o.f.NewStyle(def)
	if err != nil {
		return 0, fmt.Errorf("could not create highlight style: %w", err)
	}
	o.styles[h] = id
	return id, nil
}
