package charts

import (
	"github.com/matzehuels/microviz/pkg/diag"
	"github.com/matzehuels/microviz/pkg/geom"
	"github.com/matzehuels/microviz/pkg/model"
	"github.com/matzehuels/microviz/pkg/normalize"
)

type treemapOpts struct {
	Gap float64
}

// Treemap packs segments into the drawing rectangle by slice-and-dice,
// largest first. Each tile is inset by half the gap on every side.
func Treemap() Handler {
	return Adapt(Chart[model.TreemapSpec, model.Segments, treemapOpts]{
		Tag:  model.TypeTreemap,
		Pad:  0,
		Size: model.Size{Width: 100, Height: 60},
		Resolve: func(s model.TreemapSpec) (treemapOpts, []diag.Warning) {
			var c coerce
			o := treemapOpts{Gap: c.float("gap", s.Gap, 0, nonNegative, diag.GapDefaulted)}
			return o, c.ws
		},
		Normalize: normalize.SegmentsFrom,
		Empty:     segmentsEmpty,
		Marks: func(f Frame[model.TreemapSpec, treemapOpts], segs model.Segments) ([]model.Mark, []diag.Warning) {
			l := f.Layout
			rect := model.Box{X0: l.X0(), Y0: l.Y0(), X1: l.X0() + l.InnerWidth(), Y1: l.Y0() + l.InnerHeight()}
			inset := f.Opts.Gap / 2

			cells := geom.SliceDice(segs, geom.SortForPacking(segs), rect)
			marks := make([]model.Mark, 0, len(cells))
			for _, c := range cells {
				marks = append(marks, &model.Rect{
					ID:     f.IDs.Of("tile", c.Index),
					X:      c.Box.X0 + inset,
					Y:      c.Box.Y0 + inset,
					Width:  max(0, c.Box.Width()-2*inset),
					Height: max(0, c.Box.Height()-2*inset),
					Paint:  model.Paint{Fill: segs[c.Index].Color, Datum: c.Index},
				})
			}
			return marks, nil
		},
	})
}
