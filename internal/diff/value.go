// Package diff implements the three-way workbook comparison engine:
// cell value classification, per-cell reconciliation, and the sheet and
// workbook scan loops. It knows nothing about file formats — callers
// supply Grid and CellWriter implementations.
package diff

import (
	"strconv"
	"strings"
)

// ValueKind identifies the native kind of a cell value.
type ValueKind int

const (
	// KindEmpty is a cell with no content, or a coordinate outside a
	// sheet's extent.
	KindEmpty ValueKind = iota
	// KindNumber is a natively numeric cell.
	KindNumber
	// KindText is everything else, including numeric-looking text such
	// as "1,250.50" or "$45,000".
	KindText
)

// Value is a cell value, classified once at ingestion time.
// Raw preserves the value exactly as stored; Num is only meaningful
// when Kind is KindNumber.
type Value struct {
	Kind ValueKind
	Num  float64
	Raw  string
}

// Empty is the value of a cell with no content.
var Empty = Value{Kind: KindEmpty}

// Number returns a native numeric value.
func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n, Raw: strconv.FormatFloat(n, 'f', -1, 64)}
}

// Text returns a text value. The empty string is Empty, not text.
func Text(s string) Value {
	if s == "" {
		return Empty
	}
	return Value{Kind: KindText, Raw: s}
}

// Classify builds a Value from a raw stored string. numeric indicates
// the cell was stored as a native number; a raw string that fails to
// parse falls back to text regardless.
func Classify(raw string, numeric bool) Value {
	if raw == "" {
		return Empty
	}
	if numeric {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return Value{Kind: KindNumber, Num: n, Raw: raw}
		}
	}
	return Value{Kind: KindText, Raw: raw}
}

// IsEmpty reports whether the value is absent. Whitespace-only text
// counts as empty.
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case KindEmpty:
		return true
	case KindText:
		return strings.TrimSpace(v.Raw) == ""
	default:
		return false
	}
}

// NumericLike reports whether the value is, or parses as, a number.
func (v Value) NumericLike() bool {
	_, ok := v.Numeric()
	return ok
}

// Numeric converts the value to a float. Text is parsed after stripping
// thousands-separator commas, a leading or trailing dollar sign, and a
// trailing percent sign. The percent sign is dropped without scaling:
// "12%" converts to 12, not 0.12.
func (v Value) Numeric() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindText:
		return parseNumericText(v.Raw)
	default:
		return 0, false
	}
}

// RawEqual reports literal equality: same kind class and identical raw
// representation. Text "100" never equals the native number 100 here —
// numeric parsing is deliberately not consulted.
func (v Value) RawEqual(o Value) bool {
	if v.IsEmpty() || o.IsEmpty() {
		return v.IsEmpty() && o.IsEmpty()
	}
	if v.Kind != o.Kind {
		return false
	}
	if v.Kind == KindNumber {
		return v.Num == o.Num
	}
	return v.Raw == o.Raw
}

// String renders the value for logs and summaries.
func (v Value) String() string {
	if v.Kind == KindEmpty {
		return "<empty>"
	}
	return v.Raw
}

func parseNumericText(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	if strings.HasPrefix(s, "$") {
		s = strings.TrimPrefix(s, "$")
	} else {
		s = strings.TrimSuffix(s, "$")
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
