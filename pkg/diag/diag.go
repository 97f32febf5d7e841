// Package diag defines the recoverable-problem tier of the chart engine.
//
// Leaf functions (normalizers, allocators, option coercion) return their
// result together with a slice of [Warning] values; they never share a
// mutable sink. Dispatch folds those slices into a [Sink], which keeps at
// most [MaxWarnings] entries and silently drops the rest.
//
// Warnings are matched by [Code], never by message text.
package diag

import "fmt"

// MaxWarnings is the number of warnings kept per render call.
const MaxWarnings = 25

// Code identifies a class of recoverable problem.
type Code string

// Diagnostic codes. The set is closed; per-option codes end in _DEFAULTED.
const (
	EmptyData         Code = "EMPTY_DATA"
	NaNCoordinate     Code = "NAN_COORDINATE"
	MarkOutOfBounds   Code = "MARK_OUT_OF_BOUNDS"
	DataShapeMismatch Code = "DATA_SHAPE_MISMATCH"
	MinUnitsDropped   Code = "MIN_UNITS_DROPPED"

	SizeDefaulted        Code = "SIZE_DEFAULTED"
	PadDefaulted         Code = "PAD_DEFAULTED"
	GapDefaulted         Code = "GAP_DEFAULTED"
	RadiusDefaulted      Code = "RADIUS_DEFAULTED"
	CountDefaulted       Code = "COUNT_DEFAULTED"
	MinDefaulted         Code = "MIN_DEFAULTED"
	StrokeWidthDefaulted Code = "STROKE_WIDTH_DEFAULTED"
	ThicknessDefaulted   Code = "THICKNESS_DEFAULTED"
	PadAngleDefaulted    Code = "PAD_ANGLE_DEFAULTED"
	GapSizeDefaulted     Code = "GAP_SIZE_DEFAULTED"
	RowsDefaulted        Code = "ROWS_DEFAULTED"
	ColsDefaulted        Code = "COLS_DEFAULTED"
	BaselineDefaulted    Code = "BASELINE_DEFAULTED"
	MaxDefaulted         Code = "MAX_DEFAULTED"
)

// Warning is a coded note about a recoverable problem.
type Warning struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// New creates a warning with a formatted message.
func New(code Code, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	return string(w.Code) + ": " + w.Message
}

// Sink accumulates warnings up to MaxWarnings. The zero value is ready to use.
// A Sink belongs to a single render call.
type Sink struct {
	items   []Warning
	dropped int
}

// Add appends warnings until the cap is reached; the rest are dropped.
func (s *Sink) Add(ws ...Warning) {
	for _, w := range ws {
		if len(s.items) >= MaxWarnings {
			s.dropped++
			continue
		}
		s.items = append(s.items, w)
	}
}

// Len returns the number of kept warnings.
func (s *Sink) Len() int { return len(s.items) }

// Dropped returns how many warnings were discarded after the cap was hit.
func (s *Sink) Dropped() int { return s.dropped }

// Warnings returns a copy of the kept warnings, or nil when there are none.
func (s *Sink) Warnings() []Warning {
	if len(s.items) == 0 {
		return nil
	}
	out := make([]Warning, len(s.items))
	copy(out, s.items)
	return out
}

// Has reports whether ws contains a warning with the given code.
func Has(ws []Warning, code Code) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}
