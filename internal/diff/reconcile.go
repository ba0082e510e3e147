package diff

import "math"

// Tolerance below which two numeric-like values are considered equal,
// absorbing floating-point round-off from spreadsheet arithmetic.
const Tolerance = 1e-10

// EntryKind classifies a reportable cell difference.
type EntryKind int

const (
	// EntryNumeric: both sides numeric-like; the output is the delta.
	EntryNumeric EntryKind = iota
	// EntryText: neither side numeric-like; the output is the new text.
	EntryText
	// EntryTypeToNumeric: the cell changed from text to a number.
	EntryTypeToNumeric
	// EntryTypeToText: the cell changed from a number to text.
	EntryTypeToText
	// EntryEmptyVsValue: exactly one side is empty.
	EntryEmptyVsValue
)

// String returns the wire/report name of the kind.
func (k EntryKind) String() string {
	switch k {
	case EntryNumeric:
		return "numeric"
	case EntryText:
		return "text"
	case EntryTypeToNumeric:
		return "type_change_to_numeric"
	case EntryTypeToText:
		return "type_change_to_text"
	case EntryEmptyVsValue:
		return "empty_vs_value"
	default:
		return "unknown"
	}
}

// Highlight is a named annotation category. Concrete fills and fonts are
// resolved only at the output-writing boundary.
type Highlight int

const (
	// HighlightNumeric marks a plain numeric delta.
	HighlightNumeric Highlight = iota
	// HighlightText marks a text-to-text change.
	HighlightText
	// HighlightTypeChange marks a kind transition, including one-sided
	// emptiness.
	HighlightTypeChange
)

// Entry records one reportable cell difference. Row and Col are filled
// in by the sheet scan.
type Entry struct {
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Kind      EntryKind `json:"kind"`
	New       Value     `json:"-"`
	Prev      Value     `json:"-"`
	Output    Value     `json:"-"`
	Highlight Highlight `json:"-"`
}

// NumericDiff reports whether the entry counts toward the numeric
// difference total; everything else counts as a text difference. A
// one-sided-empty entry follows the new side's numeric-likeness.
func (e *Entry) NumericDiff() bool {
	switch e.Kind {
	case EntryNumeric, EntryTypeToNumeric:
		return true
	case EntryEmptyVsValue:
		return e.New.NumericLike()
	default:
		return false
	}
}

// Reconcile compares one (new, previous) cell pair and returns the
// difference entry, or nil when the pair is not reportable.
//
// Policy: raw equality first, numeric tolerance second. Two values that
// are literally equal never produce an entry; numeric parsing activates
// only once the raw gate has failed, and then a delta within Tolerance
// is suppressed as float round-off.
func Reconcile(newV, prevV Value) *Entry {
	if newV.IsEmpty() && prevV.IsEmpty() {
		return nil
	}
	if newV.RawEqual(prevV) {
		return nil
	}
	if newV.IsEmpty() != prevV.IsEmpty() {
		return &Entry{
			Kind:      EntryEmptyVsValue,
			New:       newV,
			Prev:      prevV,
			Output:    newV,
			Highlight: HighlightTypeChange,
		}
	}

	newNum, newOK := newV.Numeric()
	prevNum, prevOK := prevV.Numeric()
	switch {
	case newOK && prevOK:
		delta := newNum - prevNum
		if math.Abs(delta) <= Tolerance {
			return nil
		}
		return &Entry{
			Kind:      EntryNumeric,
			New:       newV,
			Prev:      prevV,
			Output:    Number(delta),
			Highlight: HighlightNumeric,
		}
	case newOK:
		return &Entry{
			Kind:      EntryTypeToNumeric,
			New:       newV,
			Prev:      prevV,
			Output:    Number(newNum),
			Highlight: HighlightTypeChange,
		}
	case prevOK:
		return &Entry{
			Kind:      EntryTypeToText,
			New:       newV,
			Prev:      prevV,
			Output:    newV,
			Highlight: HighlightTypeChange,
		}
	default:
		return &Entry{
			Kind:      EntryText,
			New:       newV,
			Prev:      prevV,
			Output:    newV,
			Highlight: HighlightText,
		}
	}
}
