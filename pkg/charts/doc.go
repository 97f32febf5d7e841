// Package charts implements the chart types the engine can dispatch to.
//
// # Registration contract
//
// Each chart type is described by a [Chart] value: its tag, default padding
// and size, an option resolver, and the handler steps
//
//	Normalize  raw data -> typed normalized data (never fails)
//	Empty      reports "no data"
//	Marks      normalized data -> positioned marks
//	Defs       optional paint resources referenced by the marks
//	A11y       optional accessibility tree; the generic summarizer is used
//	           when it is nil
//
// [Adapt] erases the type parameters so the engine can hold every chart in
// one table. Every step returns its warnings instead of writing to a shared
// sink; the engine folds them.
//
// # Representative types
//
//	sparkline    series   polyline, optional gradient area, last-value dot
//	bars         series   snapped columns, optional fade mask
//	stacked-bar  segments exact spans with track and outline frame
//	dots         segments largest-remainder dot allocation
//	waffle       segments largest-remainder grid cells
//	donut        segments annular wedges, optional center label
//	pie          segments pie wedges
//	ring         segments dashed strokes on one circle, optional glow
//	treemap      segments slice-and-dice tiles
//	bullet       record   current bar against previous and target
//
// Mark ids have the form "<prefix>-<role>-<index>" where the prefix is the
// caller's id prefix or the chart tag.
package charts
