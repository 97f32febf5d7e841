package geom

import (
	"math"

	"github.com/matzehuels/microviz/pkg/snap"
)

// MinChord is the shortest distance between arc endpoints that survives
// two-decimal snapping: points this far apart never share a snapped position.
// A sweep whose outer endpoints are closer is drawn as a full circle, and a
// long arc whose endpoints are closer is split in two.
const MinChord = 0.02

// Wedge builds the path of an annular wedge around (cx, cy) from angle start
// to end. An inner radius of 0 produces a pie wedge. A non-positive sweep
// produces an empty path.
func Wedge(cx, cy, outer, inner, start, end float64) *Path {
	p := NewPath(snap.Float)
	sweep := end - start
	if !(sweep > 0) || !(outer > 0) {
		return p
	}
	inner = max(0, min(inner, outer))

	if sweep >= 2*math.Pi || (sweep > math.Pi && chord(outer, sweep) < MinChord) {
		return fullWedge(p, cx, cy, outer, inner, start)
	}

	p.MoveTo(Polar(cx, cy, outer, start))
	arc(p, cx, cy, outer, start, end, true)
	p.Extend(ArcBox(cx, cy, outer, start, end))

	if inner > 0 {
		p.LineTo(Polar(cx, cy, inner, end))
		arc(p, cx, cy, inner, end, start, false)
		p.Extend(ArcBox(cx, cy, inner, start, end))
	} else {
		p.LineTo(cx, cy)
	}
	return p.Close()
}

// arc draws from the current point at angle a0 to angle a1. An arc longer
// than a half turn whose endpoints would snap together goes through its
// midpoint instead.
func arc(p *Path, cx, cy, r, a0, a1 float64, sweep bool) {
	span := math.Abs(a1 - a0)
	if span > math.Pi && chord(r, span) < MinChord {
		mx, my := Polar(cx, cy, r, (a0+a1)/2)
		p.ArcTo(r, false, sweep, mx, my)
		x, y := Polar(cx, cy, r, a1)
		p.ArcTo(r, false, sweep, x, y)
		return
	}
	x, y := Polar(cx, cy, r, a1)
	p.ArcTo(r, span > math.Pi, sweep, x, y)
}

// chord is the distance between the endpoints of an arc of radius r.
func chord(r, sweep float64) float64 {
	return 2 * r * math.Abs(math.Sin(sweep/2))
}

// fullWedge draws a complete ring (or disc) as two half arcs per radius.
func fullWedge(p *Path, cx, cy, outer, inner, start float64) *Path {
	mid := start + math.Pi
	end := start + 2*math.Pi
	half := mid - start
	large := half > math.Pi

	p.MoveTo(Polar(cx, cy, outer, start))
	x, y := Polar(cx, cy, outer, mid)
	p.ArcTo(outer, large, true, x, y)
	x, y = Polar(cx, cy, outer, end)
	p.ArcTo(outer, large, true, x, y)
	p.Extend(ArcBox(cx, cy, outer, start, end))

	if inner > 0 {
		p.LineTo(Polar(cx, cy, inner, end))
		x, y = Polar(cx, cy, inner, mid)
		p.ArcTo(inner, large, false, x, y)
		x, y = Polar(cx, cy, inner, start)
		p.ArcTo(inner, large, false, x, y)
	}
	return p.Close()
}
