package charts

import (
	"slices"

	"github.com/matzehuels/microviz/pkg/diag"
	"github.com/matzehuels/microviz/pkg/geom"
	"github.com/matzehuels/microviz/pkg/model"
	"github.com/matzehuels/microviz/pkg/normalize"
	"github.com/matzehuels/microviz/pkg/snap"
)

func seriesEmpty(s model.Series) bool { return len(s) == 0 }

type sparklineOpts struct {
	StrokeWidth float64
	Area        bool
	ShowLast    bool
	LastRadius  float64
}

// Sparkline draws a series as a polyline scaled to the drawing rectangle.
func Sparkline() Handler {
	return Adapt(Chart[model.SparklineSpec, model.Series, sparklineOpts]{
		Tag:  model.TypeSparkline,
		Pad:  2,
		Size: model.Size{Width: 100, Height: 24},
		Resolve: func(s model.SparklineSpec) (sparklineOpts, []diag.Warning) {
			var c coerce
			o := sparklineOpts{
				StrokeWidth: c.float("strokeWidth", s.StrokeWidth, 1.5, positive, diag.StrokeWidthDefaulted),
				Area:        boolOr(s.Area, false),
				ShowLast:    boolOr(s.ShowLast, true),
				LastRadius:  c.float("lastRadius", s.LastRadius, 2, nonNegative, diag.RadiusDefaulted),
			}
			return o, c.ws
		},
		Normalize: normalize.SeriesFrom,
		Empty:     seriesEmpty,
		Marks:     sparklineMarks,
		Defs:      sparklineDefs,
	})
}

func sparklinePoints(l model.Layout, s model.Series) (xs, ys []float64) {
	n := len(s)
	lo, hi := slices.Min(s), slices.Max(s)
	xs, ys = make([]float64, n), make([]float64, n)
	for i, v := range s {
		if n == 1 {
			xs[i] = l.X0() + l.InnerWidth()/2
		} else {
			xs[i] = l.X0() + float64(i)*l.InnerWidth()/float64(n-1)
		}
		if hi == lo {
			ys[i] = l.Y0() + l.InnerHeight()/2
		} else {
			ys[i] = l.Y0() + (hi-v)/(hi-lo)*l.InnerHeight()
		}
	}
	return xs, ys
}

func sparklineMarks(f Frame[model.SparklineSpec, sparklineOpts], s model.Series) ([]model.Mark, []diag.Warning) {
	l := f.Layout
	color := colorOr(f.Spec.Color, f.Theme.Color(0))
	mode := snap.Select(l.Pad, l.Width, l.Height)
	xs, ys := sparklinePoints(l, s)
	for i := range xs {
		xs[i], ys[i] = mode.Round(xs[i]), mode.Round(ys[i])
	}

	var marks []model.Mark
	if f.Opts.Area {
		bottom := l.Y0() + l.InnerHeight()
		p := geom.NewPath(mode).MoveTo(xs[0], bottom)
		for i := range xs {
			p.LineTo(xs[i], ys[i])
		}
		p.LineTo(xs[len(xs)-1], bottom).Close()
		marks = append(marks, &model.Path{
			ID:    f.IDs.One("area"),
			D:     p.D(),
			Box:   p.Box(),
			Paint: model.Paint{Fill: model.URL(f.IDs.One("gradient")), Datum: -1},
		})
	}

	line := geom.NewPath(mode).MoveTo(xs[0], ys[0])
	for i := 1; i < len(xs); i++ {
		line.LineTo(xs[i], ys[i])
	}
	marks = append(marks, &model.Path{
		ID:  f.IDs.One("line"),
		D:   line.D(),
		Box: line.Box(),
		Paint: model.Paint{
			Fill:        "none",
			Stroke:      color,
			StrokeWidth: f.Opts.StrokeWidth,
			LineCap:     "round",
			Datum:       -1,
		},
	})

	if f.Opts.ShowLast && f.Opts.LastRadius > 0 {
		last := len(xs) - 1
		marks = append(marks, &model.Circle{
			ID:    f.IDs.One("last"),
			CX:    xs[last],
			CY:    ys[last],
			R:     f.Opts.LastRadius,
			Paint: model.Paint{Fill: color, Datum: last},
		})
	}
	return marks, nil
}

func sparklineDefs(f Frame[model.SparklineSpec, sparklineOpts], _ model.Series) ([]model.Def, []diag.Warning) {
	if !f.Opts.Area {
		return nil, nil
	}
	color := colorOr(f.Spec.Color, f.Theme.Color(0))
	return []model.Def{&model.LinearGradient{
		ID: f.IDs.One("gradient"),
		X2: 0,
		Y2: 1,
		Stops: []model.Stop{
			{Offset: 0, Color: color, Opacity: model.Float(0.35)},
			{Offset: 1, Color: color, Opacity: model.Float(0)},
		},
	}}, nil
}

type barsOpts struct {
	Gap      float64
	Fade     bool
	Baseline float64
}

// Bars draws a series as columns. Columns snap to whole pixels when the
// layout and gap are integral.
func Bars() Handler {
	return Adapt(Chart[model.BarsSpec, model.Series, barsOpts]{
		Tag:  model.TypeBars,
		Pad:  0,
		Size: model.Size{Width: 100, Height: 24},
		Resolve: func(s model.BarsSpec) (barsOpts, []diag.Warning) {
			var c coerce
			o := barsOpts{
				Gap:      c.float("gap", s.Gap, 1, nonNegative, diag.GapDefaulted),
				Fade:     boolOr(s.Fade, false),
				Baseline: c.float("baseline", s.Baseline, 0, nil, diag.BaselineDefaulted),
			}
			return o, c.ws
		},
		Normalize: normalize.SeriesFrom,
		Empty:     seriesEmpty,
		Marks:     barsMarks,
		Defs:      barsDefs,
	})
}

func barsMarks(f Frame[model.BarsSpec, barsOpts], s model.Series) ([]model.Mark, []diag.Warning) {
	l := f.Layout
	color := colorOr(f.Spec.Color, f.Theme.Color(0))
	mode := snap.Select(l.Pad, l.Width, l.Height, f.Opts.Gap)
	cols := mode.Columns(l.X0(), l.InnerWidth(), len(s), f.Opts.Gap)

	lo := min(f.Opts.Baseline, slices.Min(s))
	hi := max(f.Opts.Baseline, slices.Max(s))
	if hi == lo {
		hi = lo + 1
	}
	scale := func(v float64) float64 {
		return mode.Round(l.Y0() + (hi-v)/(hi-lo)*l.InnerHeight())
	}
	base := scale(f.Opts.Baseline)

	var mask string
	if f.Opts.Fade {
		mask = model.URL(f.IDs.One("fade"))
	}
	marks := make([]model.Mark, len(s))
	for i, v := range s {
		y := scale(v)
		marks[i] = &model.Rect{
			ID:     f.IDs.Of("bar", i),
			X:      cols[i].X,
			Y:      min(y, base),
			Width:  cols[i].Width,
			Height: max(y, base) - min(y, base),
			Paint:  model.Paint{Fill: color, Mask: mask, Datum: i},
		}
	}
	return marks, nil
}

func barsDefs(f Frame[model.BarsSpec, barsOpts], _ model.Series) ([]model.Def, []diag.Warning) {
	if !f.Opts.Fade {
		return nil, nil
	}
	l := f.Layout
	grad := f.IDs.One("fade-gradient")
	return []model.Def{
		&model.LinearGradient{
			ID: grad,
			X2: 1,
			Stops: []model.Stop{
				{Offset: 0, Color: "#ffffff", Opacity: model.Float(0.3)},
				{Offset: 1, Color: "#ffffff", Opacity: model.Float(1)},
			},
		},
		&model.Mask{ID: f.IDs.One("fade"), Width: l.Width, Height: l.Height, Fill: model.URL(grad)},
	}, nil
}
