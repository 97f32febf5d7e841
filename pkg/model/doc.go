// Package model defines the data types that flow through the chart engine.
//
// # Overview
//
// A render call takes an [Input] (spec, raw data, size, optional state and
// theme) and returns a [RenderModel]: positioned [Mark] values, reusable
// [Def] paint resources and an [A11yTree]. Everything except the caller's
// Spec and RawData is built fresh inside one call and never shared.
//
// # Tagged unions
//
// Chart specs, raw data, marks, defs and accessibility summaries are closed
// tagged unions. In Go each variant is its own struct behind a small sealed
// interface:
//
//	Spec:    SparklineSpec, BarsSpec, StackedBarSpec, DotsSpec, WaffleSpec,
//	         DonutSpec, PieSpec, RingSpec, TreemapSpec, BulletSpec
//	RawData: Series, Segments, Record
//	Mark:    *Rect, *Circle, *Line, *Path, *Text
//	Def:     *LinearGradient, *Pattern, *Mask, *ClipRect, *Filter
//	Summary: *SeriesSummary, *SegmentSummary
//
// The JSON form of marks, defs and summaries carries a discriminator field
// ("type" or "kind") so a [RenderModel] survives a JSON round trip. This is
// what lets callers memoize models in an external cache.
//
// # Determinism
//
// Nothing in this package reads the clock, random sources or global mutable
// state. Identical inputs produce structurally identical models, and the
// JSON encoding of a model is byte-stable.
package model
