package geom

import (
	"math"
	"strings"

	"github.com/matzehuels/microviz/pkg/model"
	"github.com/matzehuels/microviz/pkg/snap"
)

// Path accumulates SVG path data and its bounding box.
type Path struct {
	mode  snap.Mode
	sb    strings.Builder
	box   model.Box
	empty bool
	arcs  int
}

// NewPath returns an empty path whose coordinates are written on the given
// rounding path.
func NewPath(mode snap.Mode) *Path {
	return &Path{mode: mode, empty: true}
}

func (p *Path) num(v float64) string { return snap.Num(p.mode.Round(v)) }

func (p *Path) point(x, y float64) {
	p.sb.WriteString(p.num(x))
	p.sb.WriteByte(' ')
	p.sb.WriteString(p.num(y))
	p.Extend(model.Box{X0: x, Y0: y, X1: x, Y1: y})
}

// Extend grows the bounding box to include b.
func (p *Path) Extend(b model.Box) {
	if p.empty {
		p.box, p.empty = b, false
		return
	}
	p.box.X0 = min(p.box.X0, b.X0)
	p.box.Y0 = min(p.box.Y0, b.Y0)
	p.box.X1 = max(p.box.X1, b.X1)
	p.box.Y1 = max(p.box.Y1, b.Y1)
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) *Path {
	p.sb.WriteByte('M')
	p.point(x, y)
	return p
}

// LineTo draws a straight line.
func (p *Path) LineTo(x, y float64) *Path {
	p.sb.WriteByte('L')
	p.point(x, y)
	return p
}

// ArcTo draws a circular arc of radius r ending at (x, y). It does not grow
// the bounding box beyond the end point; callers that know the center use
// ArcBox.
func (p *Path) ArcTo(r float64, large, sweep bool, x, y float64) *Path {
	p.sb.WriteByte('A')
	p.sb.WriteString(p.num(r))
	p.sb.WriteByte(' ')
	p.sb.WriteString(p.num(r))
	p.sb.WriteString(" 0 ")
	p.sb.WriteString(flag(large))
	p.sb.WriteByte(' ')
	p.sb.WriteString(flag(sweep))
	p.sb.WriteByte(' ')
	p.point(x, y)
	p.arcs++
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	p.sb.WriteByte('Z')
	return p
}

// D returns the path data.
func (p *Path) D() string { return p.sb.String() }

// Box returns the bounding box of everything drawn so far.
func (p *Path) Box() model.Box { return p.box }

// Arcs returns the number of arc commands written.
func (p *Path) Arcs() int { return p.arcs }

// Empty reports whether nothing has been drawn.
func (p *Path) Empty() bool { return p.empty }

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Polar returns the point at angle a on the circle (cx, cy, r).
func Polar(cx, cy, r, a float64) (x, y float64) {
	return cx + r*math.Cos(a), cy + r*math.Sin(a)
}

// ArcBox returns the bounding box of the arc of radius r around (cx, cy)
// from angle a0 to a1 (a1 >= a0), including every axis extreme it passes.
func ArcBox(cx, cy, r, a0, a1 float64) model.Box {
	x0, y0 := Polar(cx, cy, r, a0)
	x1, y1 := Polar(cx, cy, r, a1)
	b := model.Box{X0: min(x0, x1), Y0: min(y0, y1), X1: max(x0, x1), Y1: max(y0, y1)}
	if a1-a0 >= 2*math.Pi {
		return model.Box{X0: cx - r, Y0: cy - r, X1: cx + r, Y1: cy + r}
	}
	// First multiple of π/2 at or after a0.
	k := math.Ceil(a0 / (math.Pi / 2))
	for a := k * math.Pi / 2; a <= a1; a += math.Pi / 2 {
		x, y := Polar(cx, cy, r, a)
		b.X0, b.Y0 = min(b.X0, x), min(b.Y0, y)
		b.X1, b.Y1 = max(b.X1, x), max(b.Y1, y)
	}
	return b
}
