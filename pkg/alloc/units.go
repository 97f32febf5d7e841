package alloc

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/microviz/pkg/model"
)

// Units apportions total integer units across segs by largest remainder.
// minEach reserves that many units for every segment first; if minEach*n
// exceeds total the minimum is ignored for all segments and dropped is true.
// The returned counts always sum to total (0 for a non-positive total).
func Units(segs model.Segments, total, minEach int) (counts []int, dropped bool) {
	n := len(segs)
	if n == 0 {
		return nil, false
	}
	counts = make([]int, n)
	if total <= 0 {
		return counts, false
	}

	if minEach > 0 {
		if minEach*n > total {
			dropped = true
			minEach = 0
		} else {
			for i := range counts {
				counts[i] = minEach
			}
		}
	} else {
		minEach = 0
	}
	budget := total - minEach*n

	var pctSum float64
	for _, s := range segs {
		pctSum += s.Pct
	}
	if pctSum <= 0 || math.IsNaN(pctSum) || math.IsInf(pctSum, 0) {
		// Nothing to be proportional to; spread evenly.
		for i := 0; i < budget; i++ {
			counts[i%n]++
		}
		return counts, dropped
	}

	rems := make([]float64, n)
	assigned := 0
	for i, s := range segs {
		ideal := s.Pct * float64(budget) / pctSum
		base := math.Floor(ideal)
		counts[i] += int(base)
		rems[i] = ideal - base
		assigned += int(base)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if c := cmp.Compare(rems[b], rems[a]); c != 0 {
			return c
		}
		return TieBreak(segs, a, b)
	})

	for k := 0; assigned < budget; k++ {
		counts[order[k%n]]++
		assigned++
	}
	return counts, dropped
}

// TieBreak orders two segments by name, then color, then index.
func TieBreak(segs model.Segments, a, b int) int {
	if c := cmp.Compare(segs[a].Name, segs[b].Name); c != 0 {
		return c
	}
	if c := cmp.Compare(segs[a].Color, segs[b].Color); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

// Expand turns per-segment counts into an owner index per unit, in segment
// order: Expand([]int{2, 1}) == []int{0, 0, 1}.
func Expand(counts []int) []int {
	var total int
	for _, c := range counts {
		total += max(0, c)
	}
	out := make([]int, 0, total)
	for i, c := range counts {
		for range max(0, c) {
			out = append(out, i)
		}
	}
	return out
}
