package sink

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"

	"github.com/matzehuels/microviz/pkg/errors"
	"github.com/matzehuels/microviz/pkg/fonts"
	"github.com/matzehuels/microviz/pkg/model"
)

// MaxPNGPixels bounds the rasterized canvas (width x height after scaling).
const MaxPNGPixels = 16 << 20

// arcStep is the largest angle covered by one flattened arc segment.
const arcStep = math.Pi / 32

// RenderPNG rasterizes m at the given scale. A scale that is not a positive
// finite number means 1.
func RenderPNG(m model.RenderModel, scale float64) ([]byte, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = 1
	}
	fw := max(1, math.Ceil(m.Width*scale))
	fh := max(1, math.Ceil(m.Height*scale))
	// Checked in float space: huge sizes overflow int conversion.
	if !(fw*fh <= MaxPNGPixels) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"png canvas %vx%v at scale %v exceeds %d pixels", m.Width, m.Height, scale, MaxPNGPixels)
	}
	w, h := int(fw), int(fh)

	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.Scale(scale, scale)

	r := pngRenderer{dc: dc, scale: scale, defs: make(map[string]model.Def, len(m.Defs))}
	for _, d := range m.Defs {
		r.defs[d.DefID()] = d
	}
	for _, mk := range m.Marks {
		if err := r.draw(mk); err != nil {
			return nil, fmt.Errorf("draw %s: %w", mk.MarkID(), err)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

type pngRenderer struct {
	dc    *gg.Context
	scale float64
	defs  map[string]model.Def
}

func (r *pngRenderer) draw(mk model.Mark) error {
	p := mk.Style()
	dc := r.dc
	dc.Push()
	defer dc.Pop()
	r.clip(p.ClipPath)

	switch m := mk.(type) {
	case *model.Rect:
		if m.RX > 0 {
			dc.DrawRoundedRectangle(m.X, m.Y, m.Width, m.Height, m.RX)
		} else {
			dc.DrawRectangle(m.X, m.Y, m.Width, m.Height)
		}
	case *model.Circle:
		dc.DrawCircle(m.CX, m.CY, m.R)
	case *model.Line:
		dc.MoveTo(m.X1, m.Y1)
		dc.LineTo(m.X2, m.Y2)
	case *model.Path:
		if err := tracePath(dc, m.D); err != nil {
			return err
		}
	case *model.Text:
		return r.text(m)
	default:
		return nil
	}
	return r.paint(p)
}

// text draws a label with the embedded font. Glyphs are placed in device
// pixels, so position and size are scaled here rather than by the context.
func (r *pngRenderer) text(m *model.Text) error {
	if m.Text == "" || !(m.FontSize > 0) {
		return nil
	}
	c, ok := r.color(m.Fill)
	if !ok {
		if m.Fill != "" {
			return nil
		}
		c = gg.RGBA{A: 1}
	}
	if m.Opacity != nil {
		c.A *= math.Max(0, math.Min(1, *m.Opacity))
	}

	size := m.FontSize * r.scale
	face, err := fonts.Face(size)
	if err != nil {
		return err
	}
	r.dc.SetFont(face)
	r.dc.SetRGBA(c.R, c.G, c.B, c.A)

	w, _ := r.dc.MeasureString(m.Text)
	x := m.X*r.scale - w*anchorShift(m.Anchor)
	y := m.Y*r.scale + size*baselineShift(m.Baseline)
	r.dc.DrawString(m.Text, x, y)
	return nil
}

// anchorShift is the fraction of the text width left of the anchor point.
func anchorShift(anchor string) float64 {
	switch anchor {
	case "middle":
		return 0.5
	case "end":
		return 1
	}
	return 0
}

// baselineShift moves a dominant-baseline position to the alphabetic
// baseline, in ems.
func baselineShift(baseline string) float64 {
	switch baseline {
	case "middle", "central":
		return 0.35
	case "hanging", "text-before-edge", "text-top":
		return 0.8
	}
	return 0
}

// clip applies a clipRect def. Other references are ignored.
func (r *pngRenderer) clip(ref string) {
	c, ok := r.defs[defRef(ref)].(*model.ClipRect)
	if !ok {
		return
	}
	if c.RX > 0 {
		r.dc.DrawRoundedRectangle(c.X, c.Y, c.Width, c.Height, c.RX)
		r.dc.Clip()
		return
	}
	r.dc.ClipRect(c.X, c.Y, c.Width, c.Height)
}

func (r *pngRenderer) paint(p *model.Paint) error {
	dc := r.dc
	alpha := 1.0
	if p.Opacity != nil {
		alpha = math.Max(0, math.Min(1, *p.Opacity))
	}

	fill, hasFill := r.color(p.Fill)
	stroke, hasStroke := r.color(p.Stroke)
	if p.Fill == "" && p.Stroke == "" {
		// SVG paints an unspecified fill black.
		fill, hasFill = gg.RGBA{A: 1}, true
	}

	if hasFill {
		dc.SetRGBA(fill.R, fill.G, fill.B, fill.A*alpha)
		if err := dc.FillPreserve(); err != nil {
			return err
		}
	}
	if hasStroke {
		width := p.StrokeWidth
		if width <= 0 {
			width = 1
		}
		dc.SetRGBA(stroke.R, stroke.G, stroke.B, stroke.A*alpha)
		dc.SetLineWidth(width)
		dc.SetLineCap(lineCap(p.LineCap))
		if dash := parseNums(p.DashArray); len(dash) > 0 {
			dc.SetDash(dash...)
			if off := parseNums(p.DashOffset); len(off) == 1 {
				dc.SetDashOffset(off[0])
			}
		}
		err := dc.StrokePreserve()
		dc.ClearDash()
		if err != nil {
			return err
		}
	}
	dc.ClearPath()
	return nil
}

// color resolves a paint value. Gradients use their first stop and patterns
// their hatch color at half strength.
func (r *pngRenderer) color(v string) (gg.RGBA, bool) {
	if id := defRef(v); id != "" {
		switch d := r.defs[id].(type) {
		case *model.LinearGradient:
			if len(d.Stops) == 0 {
				return gg.RGBA{}, false
			}
			c, ok := hexColor(d.Stops[0].Color)
			if ok && d.Stops[0].Opacity != nil {
				c.A *= *d.Stops[0].Opacity
			}
			return c, ok
		case *model.Pattern:
			c, ok := hexColor(d.Color)
			c.A *= 0.5
			return c, ok
		}
		return gg.RGBA{}, false
	}
	return hexColor(v)
}

func hexColor(v string) (gg.RGBA, bool) {
	if !strings.HasPrefix(v, "#") {
		return gg.RGBA{}, false
	}
	switch len(v) {
	case 4, 5, 7, 9:
		if _, err := strconv.ParseUint(v[1:], 16, 64); err != nil {
			return gg.RGBA{}, false
		}
		return gg.Hex(v), true
	}
	return gg.RGBA{}, false
}

// defRef extracts the id from "url(#id)".
func defRef(v string) string {
	if !strings.HasPrefix(v, "url(#") || !strings.HasSuffix(v, ")") {
		return ""
	}
	return v[len("url(#") : len(v)-1]
}

func lineCap(s string) gg.LineCap {
	switch s {
	case "round":
		return gg.LineCapRound
	case "square":
		return gg.LineCapSquare
	}
	return gg.LineCapButt
}

func parseNums(s string) []float64 {
	var out []float64
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' }) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		out = append(out, v)
	}
	return out
}
