// Package normalize validates raw chart data and rescales it into the
// canonical forms the geometry primitives expect.
//
// Normalization never fails. Malformed entries are dropped and a payload of
// the wrong shape degrades to an empty result, which dispatch reports as
// EMPTY_DATA.
package normalize

import (
	"math"

	"github.com/matzehuels/microviz/pkg/diag"
	"github.com/matzehuels/microviz/pkg/model"
)

// Segments drops entries whose pct is non-finite or not positive, or whose
// color is empty, and rescales the survivors so their pcts sum to 100. The
// original order is preserved. If nothing survives the result is empty.
func Segments(segs model.Segments) model.Segments {
	var total float64
	kept := make(model.Segments, 0, len(segs))
	for _, s := range segs {
		if !finite(s.Pct) || s.Pct <= 0 || s.Color == "" {
			continue
		}
		kept = append(kept, s)
		total += s.Pct
	}
	if total <= 0 || !finite(total) {
		return model.Segments{}
	}
	for i := range kept {
		kept[i].Pct = kept[i].Pct * 100 / total
	}
	return kept
}

// Series keeps only finite values, in order.
func Series(s model.Series) model.Series {
	out := make(model.Series, 0, len(s))
	for _, v := range s {
		if finite(v) {
			out = append(out, v)
		}
	}
	return out
}

// Record clears non-finite fields. A record without a finite Current is
// returned as the zero Record.
func Record(r model.Record) model.Record {
	clean := func(p *float64) *float64 {
		if p == nil || !finite(*p) {
			return nil
		}
		v := *p
		return &v
	}
	out := model.Record{
		Current:  clean(r.Current),
		Previous: clean(r.Previous),
		Target:   clean(r.Target),
		Max:      clean(r.Max),
	}
	if out.Current == nil {
		return model.Record{}
	}
	return out
}

// SegmentsFrom normalizes any raw payload as segments. A payload of another
// shape yields an empty list and a DATA_SHAPE_MISMATCH warning.
func SegmentsFrom(raw model.RawData) (model.Segments, []diag.Warning) {
	switch d := raw.(type) {
	case nil:
		return model.Segments{}, nil
	case model.Segments:
		return Segments(d), nil
	}
	return model.Segments{}, []diag.Warning{mismatch("segments", raw)}
}

// SeriesFrom normalizes any raw payload as a series. An empty Segments value
// is accepted as an empty series because "[]" decodes that way.
func SeriesFrom(raw model.RawData) (model.Series, []diag.Warning) {
	switch d := raw.(type) {
	case nil:
		return model.Series{}, nil
	case model.Series:
		return Series(d), nil
	case model.Segments:
		if len(d) == 0 {
			return model.Series{}, nil
		}
	}
	return model.Series{}, []diag.Warning{mismatch("series", raw)}
}

// RecordFrom normalizes any raw payload as a record.
func RecordFrom(raw model.RawData) (model.Record, []diag.Warning) {
	switch d := raw.(type) {
	case nil:
		return model.Record{}, nil
	case model.Record:
		return Record(d), nil
	}
	return model.Record{}, []diag.Warning{mismatch("record", raw)}
}

// Sum returns the total pct of segs.
func Sum(segs model.Segments) float64 {
	var total float64
	for _, s := range segs {
		total += s.Pct
	}
	return total
}

func mismatch(want string, raw model.RawData) diag.Warning {
	return diag.New(diag.DataShapeMismatch, "expected %s data, got %s", want, shapeName(raw))
}

func shapeName(raw model.RawData) string {
	switch raw.(type) {
	case model.Series:
		return "series"
	case model.Segments:
		return "segments"
	case model.Record:
		return "record"
	}
	return "unknown"
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
