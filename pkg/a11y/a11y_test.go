package a11y

import (
	"math"
	"testing"

	"github.com/matzehuels/microviz/pkg/model"
)

func TestSeries(t *testing.T) {
	tests := []struct {
		name      string
		in        model.Series
		wantCount int
		wantMin   float64
		wantMax   float64
		wantLast  float64
		wantTrend model.Trend
	}{
		{"Up", model.Series{1, 9, 3, 7}, 4, 1, 9, 7, model.TrendUp},
		{"Down", model.Series{5, 2}, 2, 2, 5, 2, model.TrendDown},
		{"Flat", model.Series{4, 8, 4}, 3, 4, 8, 4, model.TrendFlat},
		{"Single", model.Series{3}, 1, 3, 3, 3, model.TrendFlat},
		{"SkipsNonFinite", model.Series{math.NaN(), 2, math.Inf(1), 6, math.NaN()}, 2, 2, 6, 6, model.TrendUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Series(tt.in)
			if got.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", got.Count, tt.wantCount)
			}
			if *got.Min != tt.wantMin || *got.Max != tt.wantMax || *got.Last != tt.wantLast {
				t.Errorf("min/max/last = %v/%v/%v, want %v/%v/%v",
					*got.Min, *got.Max, *got.Last, tt.wantMin, tt.wantMax, tt.wantLast)
			}
			if got.Trend != tt.wantTrend {
				t.Errorf("Trend = %q, want %q", got.Trend, tt.wantTrend)
			}
		})
	}
}

func TestSeriesEmpty(t *testing.T) {
	for _, in := range []model.Series{nil, {math.NaN()}} {
		got := Series(in)
		if got.Count != 0 || got.Min != nil || got.Trend != "" {
			t.Errorf("Series(%v) = %+v, want {Count: 0}", in, got)
		}
	}
}

func TestSegments(t *testing.T) {
	segs := model.Segments{
		{Name: "A", Color: "#a", Pct: 40.4},
		{Name: "B", Color: "#b", Pct: 40.4},
		{Name: "C", Color: "#c", Pct: 19.2},
	}
	got := Segments(segs)
	if got.Count != 3 {
		t.Errorf("Count = %d, want 3", got.Count)
	}
	if got.Largest == nil || got.Largest.Name != "A" {
		t.Fatalf("Largest = %+v, want A (first of a tie)", got.Largest)
	}
	if got.Largest.Label != "A 40%" {
		t.Errorf("Label = %q, want %q", got.Largest.Label, "A 40%")
	}

	empty := Segments(nil)
	if empty.Count != 0 || empty.Largest != nil {
		t.Errorf("Segments(nil) = %+v, want {Count: 0}", empty)
	}
}

func TestSegmentLabel(t *testing.T) {
	tests := []struct {
		seg  model.Segment
		want string
	}{
		{model.Segment{Name: "Rent", Pct: 62.5}, "Rent 63%"},
		{model.Segment{Pct: 12.4}, "12%"},
		{model.Segment{Name: "All", Pct: 100}, "All 100%"},
	}
	for _, tt := range tests {
		if got := SegmentLabel(tt.seg); got != tt.want {
			t.Errorf("SegmentLabel(%+v) = %q, want %q", tt.seg, got, tt.want)
		}
	}
}

func TestTitle(t *testing.T) {
	if got := Title(model.TypeStackedBar); got != "Stacked Bar" {
		t.Errorf("Title(stacked-bar) = %q", got)
	}
	if got := Title(model.TypeRing); got != "Ring" {
		t.Errorf("Title(ring) = %q", got)
	}
}

func TestTrees(t *testing.T) {
	st := SeriesTree(model.TypeSparkline, model.Series{1, 9, 7})
	if want := "Sparkline: 3 values, min 1, max 9, last 7, trend up"; st.Label != want {
		t.Errorf("SeriesTree label = %q, want %q", st.Label, want)
	}
	if st.Role != Role {
		t.Errorf("Role = %q, want %q", st.Role, Role)
	}

	segs := model.Segments{{Name: "A", Color: "#a", Pct: 40}, {Color: "#b", Pct: 60}}
	gt := SegmentsTree(model.TypeDonut, segs)
	if want := "Donut: 2 segments, largest 60%"; gt.Label != want {
		t.Errorf("SegmentsTree label = %q, want %q", gt.Label, want)
	}
	if len(gt.Items) != 2 || gt.Items[0].Label != "A 40%" {
		t.Errorf("Items = %+v", gt.Items)
	}

	empty := SegmentsTree(model.TypePie, nil)
	if empty.Label != "Pie: no data" || empty.Summary.(*model.SegmentSummary).Count != 0 {
		t.Errorf("empty tree = %+v", empty)
	}
}
