package geom

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/microviz/pkg/alloc"
	"github.com/matzehuels/microviz/pkg/model"
)

// Cell is one placed rectangle.
type Cell struct {
	Index int // index into the input segments
	Box   model.Box
}

// SortForPacking returns segment indices ordered by descending pct, ties
// broken by name, color and index.
func SortForPacking(segs model.Segments) []int {
	order := make([]int, len(segs))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		if c := cmp.Compare(segs[b].Pct, segs[a].Pct); c != 0 {
			return c
		}
		return alloc.TieBreak(segs, a, b)
	})
	return order
}

// SliceDice places segs, visited in order, into rect. Each step cuts the
// remaining rectangle along its longer side at the segment's share of the
// remaining pct, rounded to a whole pixel and leaving at least one pixel.
// The last segment takes the whole remainder. Packing stops when the
// remaining area reaches zero; segments not placed by then are dropped, as
// are cuts of zero size.
func SliceDice(segs model.Segments, order []int, rect model.Box) []Cell {
	var remaining float64
	for _, i := range order {
		remaining += segs[i].Pct
	}

	cells := make([]Cell, 0, len(order))
	r := rect
	for k, i := range order {
		if !(r.Area() > 0) || !(remaining > 0) {
			break
		}
		if k == len(order)-1 {
			cells = append(cells, Cell{Index: i, Box: r})
			break
		}

		frac := segs[i].Pct / remaining
		remaining -= segs[i].Pct
		if r.Width() >= r.Height() {
			cut := clampCut(math.Round(r.Width()*frac), r.Width())
			if cut > 0 {
				cells = append(cells, Cell{Index: i, Box: model.Box{X0: r.X0, Y0: r.Y0, X1: r.X0 + cut, Y1: r.Y1}})
			}
			r.X0 += cut
		} else {
			cut := clampCut(math.Round(r.Height()*frac), r.Height())
			if cut > 0 {
				cells = append(cells, Cell{Index: i, Box: model.Box{X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: r.Y0 + cut}})
			}
			r.Y0 += cut
		}
	}
	return cells
}

func clampCut(cut, side float64) float64 {
	return max(0, min(cut, side-1))
}
