// Package alloc divides space and integer budgets among normalized segments.
//
// # Spans
//
// [Spans] converts percentages into pixel spans along one axis. After the
// gaps are reserved, every span but the last gets its proportional share and
// the last span takes whatever is left, so the spans plus gaps fill the axis
// exactly with no rounding drift:
//
//	spans := alloc.Spans(segs, 0, 100, 2)
//	// spans[len(spans)-1].End() == 100
//
// # Units
//
// [Units] apportions an integer budget (dots, cells, bins) with the
// largest-remainder method. Each segment gets the floor of its ideal share;
// leftover units go one at a time to the largest fractional remainders.
// Exact ties are broken by name, then color, then input index, so the result
// is reproducible. The counts always sum to the budget.
//
// An optional per-segment minimum is all-or-nothing: when it cannot be met
// for every segment it is ignored for all of them and Units reports that it
// was dropped.
package alloc
