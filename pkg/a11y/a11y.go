// Package a11y derives accessibility summaries from chart data, independent
// of the visual pattern that draws it.
//
// A numeric series is summarized by count, min, max, last value and trend.
// A segment list is summarized by count and its largest entry. Empty input
// still yields a summary with Count 0, so there is always something to
// announce.
package a11y

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matzehuels/microviz/pkg/model"
)

// Role is the role every chart tree carries.
const Role = "img"

// Series summarizes the finite values of s.
func Series(s model.Series) *model.SeriesSummary {
	out := &model.SeriesSummary{}
	var first, lo, hi, last float64
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if out.Count == 0 {
			first, lo, hi = v, v, v
		}
		lo, hi, last = min(lo, v), max(hi, v), v
		out.Count++
	}
	if out.Count == 0 {
		return out
	}
	out.Min, out.Max, out.Last = &lo, &hi, &last
	switch {
	case last > first:
		out.Trend = model.TrendUp
	case last < first:
		out.Trend = model.TrendDown
	default:
		out.Trend = model.TrendFlat
	}
	return out
}

// Segments summarizes segs by count and largest pct. The first of several
// equal largest entries wins.
func Segments(segs model.Segments) *model.SegmentSummary {
	out := &model.SegmentSummary{Count: len(segs)}
	if len(segs) == 0 {
		return out
	}
	best := 0
	for i, s := range segs {
		if s.Pct > segs[best].Pct {
			best = i
		}
	}
	b := segs[best]
	out.Largest = &model.Largest{Name: b.Name, Pct: b.Pct, Label: SegmentLabel(b)}
	return out
}

// SegmentLabel formats a segment as "<name> <pct>%" or "<pct>%" when it has
// no name. The percentage is rounded to a whole number.
func SegmentLabel(s model.Segment) string {
	pct := strconv.FormatFloat(math.Round(s.Pct), 'f', 0, 64) + "%"
	if s.Name == "" {
		return pct
	}
	return s.Name + " " + pct
}

// Title turns a chart type tag into a display name: "stacked-bar" becomes
// "Stacked Bar".
func Title(t model.Type) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(t), "-", " "))
}

// SeriesTree builds the tree for a series chart. The label reads like
// "Sparkline: 5 values, min 1, max 9, last 7, trend up".
func SeriesTree(t model.Type, s model.Series) *model.A11yTree {
	sum := Series(s)
	label := Title(t) + ": no data"
	if sum.Count > 0 {
		label = fmt.Sprintf("%s: %d %s, min %s, max %s, last %s, trend %s",
			Title(t), sum.Count, plural(sum.Count, "value"),
			num(*sum.Min), num(*sum.Max), num(*sum.Last), sum.Trend)
	}
	return &model.A11yTree{Label: label, Role: Role, Summary: sum}
}

// SegmentsTree builds the tree for a segment chart, with one item per
// segment. The label reads like "Donut: 3 segments, largest A 40%".
func SegmentsTree(t model.Type, segs model.Segments) *model.A11yTree {
	sum := Segments(segs)
	tree := &model.A11yTree{Label: Title(t) + ": no data", Role: Role, Summary: sum}
	if sum.Count == 0 {
		return tree
	}
	tree.Label = fmt.Sprintf("%s: %d %s, largest %s",
		Title(t), sum.Count, plural(sum.Count, "segment"), sum.Largest.Label)
	tree.Items = make([]model.A11yItem, len(segs))
	for i, s := range segs {
		tree.Items[i] = model.A11yItem{Label: SegmentLabel(s)}
	}
	return tree
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
