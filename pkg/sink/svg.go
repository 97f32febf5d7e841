package sink

import (
	"bytes"
	"fmt"
	"html"
	"strconv"

	"github.com/matzehuels/microviz/pkg/fonts"
	"github.com/matzehuels/microviz/pkg/model"
	"github.com/matzehuels/microviz/pkg/snap"
)

// EmphasisClass is added to marks whose datum is hovered or selected.
const EmphasisClass = "mv-emphasis"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	class string
	title string
}

// WithClass adds a class to the root element.
func WithClass(c string) SVGOption { return func(r *svgRenderer) { r.class = c } }

// WithTitle sets the <title>, overriding the a11y label.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG writes a standalone SVG document for m.
func RenderSVG(m model.RenderModel, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	label := r.title
	role := "img"
	if m.A11y != nil {
		if label == "" {
			label = m.A11y.Label
		}
		if m.A11y.Role != "" {
			role = m.A11y.Role
		}
	}

	var buf bytes.Buffer
	w, h := snap.Num(m.Width), snap.Num(m.Height)
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" role="%s"`, w, h, w, h, esc(role))
	if label != "" {
		fmt.Fprintf(&buf, ` aria-label="%s"`, esc(label))
	}
	if r.class != "" {
		fmt.Fprintf(&buf, ` class="%s"`, esc(r.class))
	}
	buf.WriteString(">\n")
	if label != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", esc(label))
	}

	if len(m.Defs) > 0 {
		buf.WriteString("  <defs>\n")
		for _, d := range m.Defs {
			renderDef(&buf, d)
		}
		buf.WriteString("  </defs>\n")
	}
	for _, mk := range m.Marks {
		renderMark(&buf, mk)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDef(buf *bytes.Buffer, d model.Def) {
	switch d := d.(type) {
	case *model.LinearGradient:
		fmt.Fprintf(buf, `    <linearGradient id="%s" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
			esc(d.ID), num(d.X1), num(d.Y1), num(d.X2), num(d.Y2))
		for _, s := range d.Stops {
			fmt.Fprintf(buf, `      <stop offset="%s" stop-color="%s"`, num(s.Offset), esc(s.Color))
			if s.Opacity != nil {
				fmt.Fprintf(buf, ` stop-opacity="%s"`, num(*s.Opacity))
			}
			buf.WriteString("/>\n")
		}
		buf.WriteString("    </linearGradient>\n")
	case *model.Pattern:
		fmt.Fprintf(buf, `    <pattern id="%s" width="%s" height="%s" patternUnits="userSpaceOnUse" patternTransform="rotate(%s)">`+"\n",
			esc(d.ID), num(d.Size), num(d.Size), num(d.Angle))
		fmt.Fprintf(buf, `      <line x1="0" y1="0" x2="0" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			num(d.Size), esc(d.Color), num(d.StrokeWidth))
		buf.WriteString("    </pattern>\n")
	case *model.Mask:
		fmt.Fprintf(buf, `    <mask id="%s"><rect x="%s" y="%s" width="%s" height="%s" fill="%s"/></mask>`+"\n",
			esc(d.ID), num(d.X), num(d.Y), num(d.Width), num(d.Height), esc(d.Fill))
	case *model.ClipRect:
		fmt.Fprintf(buf, `    <clipPath id="%s"><rect x="%s" y="%s" width="%s" height="%s"`,
			esc(d.ID), num(d.X), num(d.Y), num(d.Width), num(d.Height))
		if d.RX > 0 {
			fmt.Fprintf(buf, ` rx="%s"`, num(d.RX))
		}
		buf.WriteString("/></clipPath>\n")
	case *model.Filter:
		fmt.Fprintf(buf, `    <filter id="%s" x="-50%%" y="-50%%" width="200%%" height="200%%">`+"\n", esc(d.ID))
		if d.Effect == "shadow" {
			color := d.Color
			if color == "" {
				color = "#000000"
			}
			fmt.Fprintf(buf, `      <feDropShadow dx="0" dy="1" stdDeviation="%s" flood-color="%s" flood-opacity="0.3"/>`+"\n",
				num(d.StdDeviation), esc(color))
		} else {
			fmt.Fprintf(buf, `      <feGaussianBlur stdDeviation="%s" result="blur"/>`+"\n", num(d.StdDeviation))
			buf.WriteString(`      <feMerge><feMergeNode in="blur"/><feMergeNode in="SourceGraphic"/></feMerge>` + "\n")
		}
		buf.WriteString("    </filter>\n")
	}
}

func renderMark(buf *bytes.Buffer, mk model.Mark) {
	switch m := mk.(type) {
	case *model.Rect:
		fmt.Fprintf(buf, `  <rect id="%s" x="%s" y="%s" width="%s" height="%s"`,
			esc(m.ID), num(m.X), num(m.Y), num(m.Width), num(m.Height))
		if m.RX > 0 {
			fmt.Fprintf(buf, ` rx="%s"`, num(m.RX))
		}
		renderPaint(buf, &m.Paint)
		buf.WriteString("/>\n")
	case *model.Circle:
		fmt.Fprintf(buf, `  <circle id="%s" cx="%s" cy="%s" r="%s"`, esc(m.ID), num(m.CX), num(m.CY), num(m.R))
		renderPaint(buf, &m.Paint)
		buf.WriteString("/>\n")
	case *model.Line:
		fmt.Fprintf(buf, `  <line id="%s" x1="%s" y1="%s" x2="%s" y2="%s"`,
			esc(m.ID), num(m.X1), num(m.Y1), num(m.X2), num(m.Y2))
		renderPaint(buf, &m.Paint)
		buf.WriteString("/>\n")
	case *model.Path:
		fmt.Fprintf(buf, `  <path id="%s" d="%s"`, esc(m.ID), esc(m.D))
		renderPaint(buf, &m.Paint)
		buf.WriteString("/>\n")
	case *model.Text:
		fmt.Fprintf(buf, `  <text id="%s" x="%s" y="%s" font-family="%s" font-size="%s"`, esc(m.ID), num(m.X), num(m.Y), esc(fonts.FontFamily), num(m.FontSize))
		if m.Anchor != "" {
			fmt.Fprintf(buf, ` text-anchor="%s"`, esc(m.Anchor))
		}
		if m.Baseline != "" {
			fmt.Fprintf(buf, ` dominant-baseline="%s"`, esc(m.Baseline))
		}
		renderPaint(buf, &m.Paint)
		fmt.Fprintf(buf, ">%s</text>\n", esc(m.Text))
	}
}

func renderPaint(buf *bytes.Buffer, p *model.Paint) {
	attr := func(name, v string) {
		if v != "" {
			fmt.Fprintf(buf, ` %s="%s"`, name, esc(v))
		}
	}
	attr("fill", p.Fill)
	attr("stroke", p.Stroke)
	if p.StrokeWidth > 0 {
		attr("stroke-width", num(p.StrokeWidth))
	}
	if p.Opacity != nil {
		attr("opacity", num(*p.Opacity))
	}
	attr("stroke-dasharray", p.DashArray)
	attr("stroke-dashoffset", p.DashOffset)
	attr("stroke-linecap", p.LineCap)
	attr("transform", p.Transform)
	attr("clip-path", p.ClipPath)
	attr("mask", p.Mask)
	attr("filter", p.Filter)

	class := p.Class
	if p.Emphasis {
		if class != "" {
			class += " "
		}
		class += EmphasisClass
	}
	attr("class", class)
	if p.Datum >= 0 {
		attr("data-datum", strconv.Itoa(p.Datum))
	}
}

func num(v float64) string { return snap.Num(v) }

func esc(s string) string { return html.EscapeString(s) }
