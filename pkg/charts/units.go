package charts

import (
	"math"

	"github.com/matzehuels/microviz/pkg/alloc"
	"github.com/matzehuels/microviz/pkg/diag"
	"github.com/matzehuels/microviz/pkg/model"
	"github.com/matzehuels/microviz/pkg/normalize"
	"github.com/matzehuels/microviz/pkg/snap"
)

// maxUnits bounds integer budgets so one call stays small.
const maxUnits = 10000

// maxGridSide bounds waffle rows and cols.
const maxGridSide = 100

type dotsOpts struct {
	Count         int
	Radius        float64
	Gap           float64
	MinPerSegment int
}

// Dots draws a fixed number of dots, colored by each segment's
// largest-remainder share, wrapping into rows.
func Dots() Handler {
	return Adapt(Chart[model.DotsSpec, model.Segments, dotsOpts]{
		Tag:  model.TypeDots,
		Pad:  0,
		Size: model.Size{Width: 200, Height: 12},
		Resolve: func(s model.DotsSpec) (dotsOpts, []diag.Warning) {
			var c coerce
			o := dotsOpts{
				Count:         c.int("count", s.Count, 12, intBetween(0, maxUnits), diag.CountDefaulted),
				Radius:        c.float("radius", s.Radius, 6, positive, diag.RadiusDefaulted),
				Gap:           c.float("gap", s.Gap, 4, nonNegative, diag.GapDefaulted),
				MinPerSegment: c.int("minPerSegment", s.MinPerSegment, 0, intBetween(0, maxUnits), diag.MinDefaulted),
			}
			return o, c.ws
		},
		Normalize: normalize.SegmentsFrom,
		Empty:     segmentsEmpty,
		Marks:     dotsMarks,
	})
}

func dotsMarks(f Frame[model.DotsSpec, dotsOpts], segs model.Segments) ([]model.Mark, []diag.Warning) {
	l, o := f.Layout, f.Opts
	var ws []diag.Warning
	counts, dropped := alloc.Units(segs, o.Count, o.MinPerSegment)
	if dropped {
		ws = append(ws, diag.New(diag.MinUnitsDropped,
			"minPerSegment %d needs %d dots, only %d available", o.MinPerSegment, o.MinPerSegment*len(segs), o.Count))
	}

	step := 2*o.Radius + o.Gap
	perRow := max(1, int(math.Floor((l.InnerWidth()+o.Gap)/step)))
	owners := alloc.Expand(counts)
	marks := make([]model.Mark, len(owners))
	for k, owner := range owners {
		row, col := k/perRow, k%perRow
		marks[k] = &model.Circle{
			ID:    f.IDs.Of("dot", k),
			CX:    l.X0() + o.Radius + float64(col)*step,
			CY:    l.Y0() + o.Radius + float64(row)*step,
			R:     o.Radius,
			Paint: model.Paint{Fill: segs[owner].Color, Datum: owner},
		}
	}
	return marks, ws
}

type waffleOpts struct {
	Rows int
	Cols int
	Gap  float64
}

// Waffle fills a rows x cols grid, one cell per allocated unit, in row-major
// order.
func Waffle() Handler {
	return Adapt(Chart[model.WaffleSpec, model.Segments, waffleOpts]{
		Tag:  model.TypeWaffle,
		Pad:  0,
		Size: model.Size{Width: 100, Height: 100},
		Resolve: func(s model.WaffleSpec) (waffleOpts, []diag.Warning) {
			var c coerce
			o := waffleOpts{
				Rows: c.int("rows", s.Rows, 10, intBetween(1, maxGridSide), diag.RowsDefaulted),
				Cols: c.int("cols", s.Cols, 10, intBetween(1, maxGridSide), diag.ColsDefaulted),
				Gap:  c.float("gap", s.Gap, 1, nonNegative, diag.GapDefaulted),
			}
			return o, c.ws
		},
		Normalize: normalize.SegmentsFrom,
		Empty:     segmentsEmpty,
		Marks:     waffleMarks,
	})
}

func waffleMarks(f Frame[model.WaffleSpec, waffleOpts], segs model.Segments) ([]model.Mark, []diag.Warning) {
	l, o := f.Layout, f.Opts
	mode := snap.Select(l.Pad, l.Width, l.Height, o.Gap)
	xs := mode.Columns(l.X0(), l.InnerWidth(), o.Cols, o.Gap)
	ys := mode.Columns(l.Y0(), l.InnerHeight(), o.Rows, o.Gap)

	counts, _ := alloc.Units(segs, o.Rows*o.Cols, 0)
	owners := alloc.Expand(counts)
	marks := make([]model.Mark, len(owners))
	for k, owner := range owners {
		x, y := xs[k%o.Cols], ys[k/o.Cols]
		marks[k] = &model.Rect{
			ID:     f.IDs.Of("cell", k),
			X:      x.X,
			Y:      y.X,
			Width:  x.Width,
			Height: y.Width,
			Paint:  model.Paint{Fill: segs[owner].Color, Datum: owner},
		}
	}
	return marks, nil
}
