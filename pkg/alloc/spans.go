package alloc

import "github.com/matzehuels/microviz/pkg/model"

// Span is the extent of one segment along an axis.
type Span struct {
	Index  int     // index into the input segments
	Offset float64 // absolute start
	Width  float64
}

// End returns the absolute end of the span.
func (s Span) End() float64 { return s.Offset + s.Width }

// Spans lays segs out along an axis of the given length starting at origin,
// with gap pixels between neighbours. The last span absorbs the remainder.
// Negative gaps are treated as zero. When the gaps alone exceed the length
// every span has zero width.
func Spans(segs model.Segments, origin, length, gap float64) []Span {
	n := len(segs)
	if n == 0 {
		return nil
	}
	gap = max(0, gap)
	length = max(0, length)
	avail := max(0, length-gap*float64(n-1))

	spans := make([]Span, n)
	offset := origin
	var used float64
	for i, s := range segs {
		w := s.Pct * avail / 100
		if i == n-1 {
			w = max(0, avail-used)
		}
		spans[i] = Span{Index: i, Offset: offset, Width: w}
		used += w
		offset += w + gap
	}
	return spans
}
