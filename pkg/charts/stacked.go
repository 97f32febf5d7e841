package charts

import (
	"github.com/matzehuels/microviz/pkg/alloc"
	"github.com/matzehuels/microviz/pkg/diag"
	"github.com/matzehuels/microviz/pkg/model"
	"github.com/matzehuels/microviz/pkg/normalize"
)

func segmentsEmpty(s model.Segments) bool { return len(s) == 0 }

type stackedOpts struct {
	Gap    float64
	Radius float64
}

// StackedBar draws segments side by side in one bar. The segment spans fill
// the drawing width exactly; a track sits behind them and an outline frame
// on top.
func StackedBar() Handler {
	return Adapt(Chart[model.StackedBarSpec, model.Segments, stackedOpts]{
		Tag:  model.TypeStackedBar,
		Pad:  0,
		Size: model.Size{Width: 100, Height: 10},
		Resolve: func(s model.StackedBarSpec) (stackedOpts, []diag.Warning) {
			var c coerce
			o := stackedOpts{
				Gap:    c.float("gap", s.Gap, 0, nonNegative, diag.GapDefaulted),
				Radius: c.float("radius", s.Radius, 0, nonNegative, diag.RadiusDefaulted),
			}
			return o, c.ws
		},
		Normalize: normalize.SegmentsFrom,
		Empty:     segmentsEmpty,
		Marks:     stackedMarks,
		Defs:      stackedDefs,
	})
}

func stackedMarks(f Frame[model.StackedBarSpec, stackedOpts], segs model.Segments) ([]model.Mark, []diag.Warning) {
	l := f.Layout
	var clip string
	if f.Opts.Radius > 0 {
		clip = model.URL(f.IDs.One("clip"))
	}

	marks := make([]model.Mark, 0, len(segs)+2)
	marks = append(marks, &model.Rect{
		ID:     f.IDs.One("track"),
		X:      l.X0(),
		Y:      l.Y0(),
		Width:  l.InnerWidth(),
		Height: l.InnerHeight(),
		RX:     f.Opts.Radius,
		Paint:  model.Paint{Fill: f.Theme.Track, Datum: -1},
	})
	for _, sp := range alloc.Spans(segs, l.X0(), l.InnerWidth(), f.Opts.Gap) {
		marks = append(marks, &model.Rect{
			ID:     f.IDs.Of("segment", sp.Index),
			X:      sp.Offset,
			Y:      l.Y0(),
			Width:  sp.Width,
			Height: l.InnerHeight(),
			Paint:  model.Paint{Fill: segs[sp.Index].Color, ClipPath: clip, Datum: sp.Index},
		})
	}
	marks = append(marks, &model.Rect{
		ID:     f.IDs.One("frame"),
		X:      l.X0(),
		Y:      l.Y0(),
		Width:  l.InnerWidth(),
		Height: l.InnerHeight(),
		RX:     f.Opts.Radius,
		Paint:  model.Paint{Fill: "none", Stroke: f.Theme.Track, StrokeWidth: 1, Datum: -1},
	})
	return marks, nil
}

func stackedDefs(f Frame[model.StackedBarSpec, stackedOpts], _ model.Segments) ([]model.Def, []diag.Warning) {
	if f.Opts.Radius <= 0 {
		return nil, nil
	}
	l := f.Layout
	return []model.Def{&model.ClipRect{
		ID:     f.IDs.One("clip"),
		X:      l.X0(),
		Y:      l.Y0(),
		Width:  l.InnerWidth(),
		Height: l.InnerHeight(),
		RX:     f.Opts.Radius,
	}}, nil
}
