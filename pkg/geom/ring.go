package geom

import (
	"math"

	"github.com/matzehuels/microviz/pkg/model"
	"github.com/matzehuels/microviz/pkg/snap"
)

// RingDash is the stroke pattern of one segment on a ring.
type RingDash struct {
	Index      int // index into the input segments
	Length     float64
	Offset     float64
	DashArray  string
	DashOffset string
}

// RingDashes computes one dash per segment on a circle of radius r, with
// gap pixels after every segment. A zero-length segment emits no dash but
// still advances the running offset by its gap.
func RingDashes(segs model.Segments, r, gap float64) []RingDash {
	if len(segs) == 0 || !(r > 0) {
		return nil
	}
	gap = max(0, gap)
	circ := 2 * math.Pi * r
	usable := max(0, circ-gap*float64(len(segs)))

	out := make([]RingDash, 0, len(segs))
	var running float64
	for i, s := range segs {
		length := s.Pct / 100 * usable
		if !(length > 0) {
			running += gap
			continue
		}
		offset := circ*0.25 - running
		out = append(out, RingDash{
			Index:      i,
			Length:     length,
			Offset:     offset,
			DashArray:  snap.Num(length) + " " + snap.Num(circ),
			DashOffset: snap.Num(offset),
		})
		running += length + gap
	}
	return out
}
