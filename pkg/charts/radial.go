package charts

import (
	"math"

	"github.com/matzehuels/microviz/pkg/diag"
	"github.com/matzehuels/microviz/pkg/geom"
	"github.com/matzehuels/microviz/pkg/model"
	"github.com/matzehuels/microviz/pkg/normalize"
)

// startAngle is twelve o'clock.
const startAngle = -math.Pi / 2

type donutOpts struct {
	Thickness float64
	PadAngle  float64
}

// Donut draws segments as annular wedges starting at twelve o'clock.
func Donut() Handler {
	return Adapt(Chart[model.DonutSpec, model.Segments, donutOpts]{
		Tag:  model.TypeDonut,
		Pad:  0,
		Size: model.Size{Width: 100, Height: 100},
		Resolve: func(s model.DonutSpec) (donutOpts, []diag.Warning) {
			var c coerce
			o := donutOpts{
				Thickness: c.float("thickness", s.Thickness, 0.35, func(v float64) bool { return v > 0 && v <= 1 }, diag.ThicknessDefaulted),
				PadAngle:  c.float("padAngle", s.PadAngle, 0, between(0, math.Pi/4), diag.PadAngleDefaulted),
			}
			return o, c.ws
		},
		Normalize: normalize.SegmentsFrom,
		Empty:     segmentsEmpty,
		Marks: func(f Frame[model.DonutSpec, donutOpts], segs model.Segments) ([]model.Mark, []diag.Warning) {
			l := f.Layout
			outer := min(l.InnerWidth(), l.InnerHeight()) / 2
			inner := outer * (1 - f.Opts.Thickness)
			marks := wedgeMarks(f.IDs, l, segs, outer, inner, f.Opts.PadAngle)
			if f.Spec.CenterLabel != "" {
				marks = append(marks, &model.Text{
					ID:       f.IDs.One("label"),
					X:        l.CenterX(),
					Y:        l.CenterY(),
					Text:     f.Spec.CenterLabel,
					FontSize: max(1, math.Round(inner*0.5)),
					Anchor:   "middle",
					Baseline: "central",
					Paint:    model.Paint{Fill: f.Theme.Text, Datum: -1},
				})
			}
			return marks, nil
		},
	})
}

type pieOpts struct {
	PadAngle float64
}

// Pie draws segments as full wedges.
func Pie() Handler {
	return Adapt(Chart[model.PieSpec, model.Segments, pieOpts]{
		Tag:  model.TypePie,
		Pad:  0,
		Size: model.Size{Width: 100, Height: 100},
		Resolve: func(s model.PieSpec) (pieOpts, []diag.Warning) {
			var c coerce
			o := pieOpts{PadAngle: c.float("padAngle", s.PadAngle, 0, between(0, math.Pi/4), diag.PadAngleDefaulted)}
			return o, c.ws
		},
		Normalize: normalize.SegmentsFrom,
		Empty:     segmentsEmpty,
		Marks: func(f Frame[model.PieSpec, pieOpts], segs model.Segments) ([]model.Mark, []diag.Warning) {
			l := f.Layout
			outer := min(l.InnerWidth(), l.InnerHeight()) / 2
			return wedgeMarks(f.IDs, l, segs, outer, 0, f.Opts.PadAngle), nil
		},
	})
}

// wedgeMarks lays segments around the layout center clockwise from twelve
// o'clock. padAngle is taken half from each side of a wedge and is ignored
// for a single segment. Wedges with nothing left after padding are skipped.
func wedgeMarks(ids IDs, l model.Layout, segs model.Segments, outer, inner, padAngle float64) []model.Mark {
	if len(segs) == 1 {
		padAngle = 0
	}
	cx, cy := l.CenterX(), l.CenterY()
	marks := make([]model.Mark, 0, len(segs))
	a := startAngle
	for i, s := range segs {
		sweep := s.Pct / 100 * 2 * math.Pi
		start, end := a+padAngle/2, a+sweep-padAngle/2
		a += sweep
		p := geom.Wedge(cx, cy, outer, inner, start, end)
		if p.Empty() {
			continue
		}
		marks = append(marks, &model.Path{
			ID:    ids.Of("wedge", i),
			D:     p.D(),
			Box:   p.Box(),
			Paint: model.Paint{Fill: s.Color, Datum: i},
		})
	}
	return marks
}

type ringOpts struct {
	StrokeWidth float64
	GapSize     float64
	Track       bool
	Glow        bool
}

// Ring draws each segment as a dashed stroke on one shared circle.
func Ring() Handler {
	return Adapt(Chart[model.RingSpec, model.Segments, ringOpts]{
		Tag:  model.TypeRing,
		Pad:  0,
		Size: model.Size{Width: 100, Height: 100},
		Resolve: func(s model.RingSpec) (ringOpts, []diag.Warning) {
			var c coerce
			o := ringOpts{
				StrokeWidth: c.float("strokeWidth", s.StrokeWidth, 4, positive, diag.StrokeWidthDefaulted),
				GapSize:     c.float("gapSize", s.GapSize, 0, nonNegative, diag.GapSizeDefaulted),
				Track:       boolOr(s.Track, false),
				Glow:        boolOr(s.Glow, false),
			}
			return o, c.ws
		},
		Normalize: normalize.SegmentsFrom,
		Empty:     segmentsEmpty,
		Marks:     ringMarks,
		Defs: func(f Frame[model.RingSpec, ringOpts], _ model.Segments) ([]model.Def, []diag.Warning) {
			if !f.Opts.Glow {
				return nil, nil
			}
			return []model.Def{&model.Filter{
				ID:           f.IDs.One("glow"),
				Effect:       "glow",
				StdDeviation: f.Opts.StrokeWidth / 2,
			}}, nil
		},
	})
}

func ringMarks(f Frame[model.RingSpec, ringOpts], segs model.Segments) ([]model.Mark, []diag.Warning) {
	l, o := f.Layout, f.Opts
	r := min(l.InnerWidth(), l.InnerHeight())/2 - o.StrokeWidth/2
	if r <= 0 {
		return nil, nil
	}
	cx, cy := l.CenterX(), l.CenterY()
	var filter string
	if o.Glow {
		filter = model.URL(f.IDs.One("glow"))
	}

	var marks []model.Mark
	if o.Track {
		marks = append(marks, &model.Circle{
			ID: f.IDs.One("track"), CX: cx, CY: cy, R: r,
			Paint: model.Paint{Fill: "none", Stroke: f.Theme.Track, StrokeWidth: o.StrokeWidth, Datum: -1},
		})
	}
	for _, d := range geom.RingDashes(segs, r, o.GapSize) {
		marks = append(marks, &model.Circle{
			ID: f.IDs.Of("arc", d.Index), CX: cx, CY: cy, R: r,
			Paint: model.Paint{
				Fill:        "none",
				Stroke:      segs[d.Index].Color,
				StrokeWidth: o.StrokeWidth,
				DashArray:   d.DashArray,
				DashOffset:  d.DashOffset,
				LineCap:     "butt",
				Filter:      filter,
				Datum:       d.Index,
			},
		})
	}
	return marks, nil
}
