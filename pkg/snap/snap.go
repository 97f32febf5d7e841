// Package snap chooses between two mutually exclusive rounding paths for a
// group of marks.
//
// When every geometry input of a group (pad, width, height, gap) is
// integral, the group takes the [Integer] path: coordinates are rounded and
// leftover width is bucketed across columns so edges land on device pixels.
// Otherwise the group takes the [Float] path and coordinates are kept
// sub-pixel, serialized with two decimals. A group never mixes the two.
package snap

import (
	"math"
	"strconv"
)

// Epsilon is the tolerance of the integrality test.
const Epsilon = 1e-6

// Mode is a rounding path.
type Mode int

const (
	// Float keeps sub-pixel coordinates.
	Float Mode = iota
	// Integer rounds every coordinate to whole pixels.
	Integer
)

func (m Mode) String() string {
	if m == Integer {
		return "integer"
	}
	return "float"
}

// Integral reports whether every value is within Epsilon of an integer.
// Non-finite values are never integral.
func Integral(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
		if math.Abs(v-math.Round(v)) > Epsilon {
			return false
		}
	}
	return true
}

// Select returns Integer when all vals are integral, Float otherwise.
func Select(vals ...float64) Mode {
	if Integral(vals...) {
		return Integer
	}
	return Float
}

// Round applies the mode to one coordinate.
func (m Mode) Round(v float64) float64 {
	if m == Integer {
		return math.Round(v)
	}
	return v
}

// Column is one horizontal slot.
type Column struct {
	X     float64
	Width float64
}

// Columns divides [x0, x0+width] into n columns separated by gap, on the
// path selected by the integrality of x0, width and gap. Negative gaps are
// treated as zero.
func Columns(x0, width float64, n int, gap float64) ([]Column, Mode) {
	mode := Select(x0, width, max(0, gap))
	return mode.Columns(x0, width, n, gap), mode
}

// Columns divides [x0, x0+width] on path m. On the Integer path inputs are
// rounded first, column widths differ by at most one pixel and they sum
// exactly to the width left after gaps. On the Float path every column gets
// the same fractional width.
func (m Mode) Columns(x0, width float64, n int, gap float64) []Column {
	if n <= 0 {
		return nil
	}
	gap = max(0, gap)
	cols := make([]Column, n)

	if m == Integer {
		x0, width, gap = math.Round(x0), math.Round(width), math.Round(gap)
		avail := max(0, width-gap*float64(n-1))
		for i := range cols {
			left := math.Floor(float64(i) * avail / float64(n))
			right := math.Floor(float64(i+1) * avail / float64(n))
			cols[i] = Column{X: x0 + left + float64(i)*gap, Width: right - left}
		}
		return cols
	}

	avail := max(0, width-gap*float64(n-1))
	w := avail / float64(n)
	for i := range cols {
		cols[i] = Column{X: x0 + float64(i)*(w+gap), Width: w}
	}
	return cols
}

// Num formats a coordinate: whole numbers print without a fraction,
// anything else with exactly two decimals.
func Num(v float64) string {
	r := math.Round(v*100) / 100
	if r == math.Trunc(r) {
		return strconv.FormatInt(int64(r), 10)
	}
	return strconv.FormatFloat(r, 'f', 2, 64)
}
