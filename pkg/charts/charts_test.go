package charts

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/microviz/pkg/diag"
	"github.com/matzehuels/microviz/pkg/model"
)

// run drives a handler through its steps the way the engine does, without
// the post-pass.
func run(t *testing.T, h Handler, spec model.Spec, data model.RawData, size model.Size) ([]model.Mark, []model.Def, *model.A11yTree, []diag.Warning) {
	t.Helper()
	if !h.Accepts(spec) {
		t.Fatalf("%s does not accept %T", h.Type(), spec)
	}
	if size == (model.Size{}) {
		size = h.DefaultSize()
	}
	pad := h.DefaultPad()
	if p := spec.Base().Pad; p != nil {
		pad = *p
	}
	opts, ws := h.Options(spec)
	norm, nws := h.Normalize(data)
	ws = append(ws, nws...)
	env := Env{
		Spec:    spec,
		Options: opts,
		Layout:  model.Layout{Width: size.Width, Height: size.Height, Pad: pad},
		Theme:   model.DefaultTheme,
		IDs:     IDs{Prefix: string(h.Type())},
	}
	var marks []model.Mark
	var defs []model.Def
	if !h.IsEmpty(norm) {
		var mws, dws []diag.Warning
		marks, mws = h.Marks(env, norm)
		defs, dws = h.Defs(env, norm)
		ws = append(append(ws, mws...), dws...)
	}
	return marks, defs, h.A11y(env, norm), ws
}

func TestAllHandlersConsistent(t *testing.T) {
	seen := map[model.Type]bool{}
	for _, h := range All() {
		if err := h.Check(); err != nil {
			t.Errorf("%s: %v", h.Type(), err)
		}
		if seen[h.Type()] {
			t.Errorf("duplicate handler %s", h.Type())
		}
		seen[h.Type()] = true
		if s := h.DefaultSize(); s.Width <= 0 || s.Height <= 0 {
			t.Errorf("%s: default size %+v", h.Type(), s)
		}
	}
}

func TestCheckRejectsWrongSpec(t *testing.T) {
	bad := Adapt(Chart[model.PieSpec, model.Segments, struct{}]{
		Tag:       model.TypeDonut,
		Resolve:   func(model.PieSpec) (struct{}, []diag.Warning) { return struct{}{}, nil },
		Normalize: func(model.RawData) (model.Segments, []diag.Warning) { return nil, nil },
		Empty:     segmentsEmpty,
		Marks: func(Frame[model.PieSpec, struct{}], model.Segments) ([]model.Mark, []diag.Warning) {
			return nil, nil
		},
	})
	if err := bad.Check(); err == nil {
		t.Error("Check() accepted a donut handler built on the pie spec")
	}
	if bad.Accepts(model.DonutSpec{}) {
		t.Error("Accepts(DonutSpec) = true for a pie-typed handler")
	}
}

func TestIntBetween(t *testing.T) {
	in := intBetween(1, maxGridSide)
	for v, want := range map[int]bool{0: false, 1: true, maxGridSide: true, maxGridSide + 1: false} {
		if got := in(v); got != want {
			t.Errorf("intBetween(1, %d)(%d) = %v, want %v", maxGridSide, v, got, want)
		}
	}
}

func TestOptionCoercion(t *testing.T) {
	tests := []struct {
		name string
		h    Handler
		spec model.Spec
		want diag.Code
	}{
		{"NegativeGap", Bars(), model.BarsSpec{Gap: model.Float(-1)}, diag.GapDefaulted},
		{"NaNStroke", Sparkline(), model.SparklineSpec{StrokeWidth: model.Float(math.NaN())}, diag.StrokeWidthDefaulted},
		{"ZeroRadius", Dots(), model.DotsSpec{Radius: model.Float(0)}, diag.RadiusDefaulted},
		{"NegativeCount", Dots(), model.DotsSpec{Count: model.Int(-3)}, diag.CountDefaulted},
		{"NegativeMin", Dots(), model.DotsSpec{MinPerSegment: model.Int(-1)}, diag.MinDefaulted},
		{"HugeCount", Dots(), model.DotsSpec{Count: model.Int(maxUnits + 1)}, diag.CountDefaulted},
		{"TooManyRows", Waffle(), model.WaffleSpec{Rows: model.Int(1000)}, diag.RowsDefaulted},
		{"ZeroCols", Waffle(), model.WaffleSpec{Cols: model.Int(0)}, diag.ColsDefaulted},
		{"ThickDonut", Donut(), model.DonutSpec{Thickness: model.Float(1.5)}, diag.ThicknessDefaulted},
		{"HugePadAngle", Pie(), model.PieSpec{PadAngle: model.Float(3)}, diag.PadAngleDefaulted},
		{"NegativeGapSize", Ring(), model.RingSpec{GapSize: model.Float(-2)}, diag.GapSizeDefaulted},
		{"InfBaseline", Bars(), model.BarsSpec{Baseline: model.Float(math.Inf(1))}, diag.BaselineDefaulted},
		{"ZeroMax", Bullet(), model.BulletSpec{Max: model.Float(0)}, diag.MaxDefaulted},
		{"NegativeRadius", StackedBar(), model.StackedBarSpec{Radius: model.Float(-4)}, diag.RadiusDefaulted},
		{"NegativeTreemapGap", Treemap(), model.TreemapSpec{Gap: model.Float(-4)}, diag.GapDefaulted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ws := tt.h.Options(tt.spec)
			if len(ws) != 1 || ws[0].Code != tt.want {
				t.Errorf("Options() warnings = %v, want one %s", ws, tt.want)
			}
		})
	}
}

func TestSparkline(t *testing.T) {
	marks, defs, tree, ws := run(t, Sparkline(), model.SparklineSpec{Area: model.Bool(true), Color: "#111"}, model.Series{1, 5, 3}, model.Size{Width: 104, Height: 24})
	if len(ws) != 0 {
		t.Errorf("warnings = %v", ws)
	}
	if len(marks) != 3 {
		t.Fatalf("len(marks) = %d, want area, line and last dot", len(marks))
	}
	area, line, last := marks[0].(*model.Path), marks[1].(*model.Path), marks[2].(*model.Circle)
	if area.Fill != "url(#sparkline-gradient)" {
		t.Errorf("area fill = %q", area.Fill)
	}
	if len(defs) != 1 || defs[0].DefID() != "sparkline-gradient" {
		t.Errorf("defs = %v", defs)
	}
	// Points at x = 2, 52, 102; y spans pad..height-pad.
	if want := "M2 22L52 2L102 12"; line.D != want {
		t.Errorf("line d = %q, want %q", line.D, want)
	}
	if last.CX != 102 || last.CY != 12 || last.Datum != 2 {
		t.Errorf("last dot = %+v", last)
	}
	if line.Stroke != "#111" {
		t.Errorf("stroke = %q, want #111", line.Stroke)
	}
	if !strings.HasPrefix(tree.Label, "Sparkline: 3 values") {
		t.Errorf("label = %q", tree.Label)
	}
}

func TestSparklineFlatSeries(t *testing.T) {
	marks, _, _, _ := run(t, Sparkline(), model.SparklineSpec{ShowLast: model.Bool(false)}, model.Series{4, 4}, model.Size{Width: 10, Height: 10})
	if len(marks) != 1 {
		t.Fatalf("len(marks) = %d, want 1", len(marks))
	}
	if d := marks[0].(*model.Path).D; d != "M2 5L8 5" {
		t.Errorf("d = %q, want a centered flat line", d)
	}
}

func TestBarsFade(t *testing.T) {
	marks, defs, _, _ := run(t, Bars(), model.BarsSpec{Fade: model.Bool(true), Gap: model.Float(0)}, model.Series{2, 4}, model.Size{Width: 10, Height: 8})
	if len(defs) != 2 {
		t.Fatalf("len(defs) = %d, want gradient and mask", len(defs))
	}
	if defs[1].DefKind() != model.DefMask {
		t.Errorf("defs[1] = %s, want mask", defs[1].DefKind())
	}
	b0, b1 := marks[0].(*model.Rect), marks[1].(*model.Rect)
	if b0.Mask != "url(#bars-fade)" {
		t.Errorf("mask = %q", b0.Mask)
	}
	if b0.X != 0 || b0.Width != 5 || b0.Y != 4 || b0.Height != 4 {
		t.Errorf("bar 0 = %+v", b0)
	}
	if b1.X != 5 || b1.Y != 0 || b1.Height != 8 {
		t.Errorf("bar 1 = %+v", b1)
	}
}

func TestBarsNegativeValues(t *testing.T) {
	marks, _, _, _ := run(t, Bars(), model.BarsSpec{Gap: model.Float(0)}, model.Series{-2, 2}, model.Size{Width: 4, Height: 8})
	neg, pos := marks[0].(*model.Rect), marks[1].(*model.Rect)
	if neg.Y != 4 || neg.Height != 4 {
		t.Errorf("negative bar = %+v, want hanging from the baseline", neg)
	}
	if pos.Y != 0 || pos.Height != 4 {
		t.Errorf("positive bar = %+v", pos)
	}
}

func TestStackedBarClip(t *testing.T) {
	segs := model.Segments{{Color: "#a", Pct: 50}, {Color: "#b", Pct: 50}}
	marks, defs, _, _ := run(t, StackedBar(), model.StackedBarSpec{Radius: model.Float(4), Gap: model.Float(2)}, segs, model.Size{Width: 102, Height: 8})
	if len(defs) != 1 || defs[0].DefKind() != model.DefClipRect {
		t.Fatalf("defs = %v, want one clip rect", defs)
	}
	a, b := marks[1].(*model.Rect), marks[2].(*model.Rect)
	if a.ClipPath != "url(#stacked-bar-clip)" {
		t.Errorf("clip = %q", a.ClipPath)
	}
	if a.Width != 50 || b.X != 52 || b.Width != 50 {
		t.Errorf("segments = %+v, %+v", a, b)
	}
}

func TestDotsMinDropped(t *testing.T) {
	segs := model.Segments{{Color: "#a", Pct: 90}, {Color: "#b", Pct: 5}, {Color: "#c", Pct: 5}}
	marks, _, _, ws := run(t, Dots(), model.DotsSpec{Count: model.Int(4), MinPerSegment: model.Int(2)}, segs, model.Size{})
	if !diag.Has(ws, diag.MinUnitsDropped) {
		t.Errorf("warnings = %v, want MIN_UNITS_DROPPED", ws)
	}
	if len(marks) != 4 {
		t.Errorf("len(marks) = %d, want 4", len(marks))
	}

	marks, _, _, ws = run(t, Dots(), model.DotsSpec{Count: model.Int(6), MinPerSegment: model.Int(2)}, segs, model.Size{})
	if diag.Has(ws, diag.MinUnitsDropped) {
		t.Errorf("feasible minimum was dropped: %v", ws)
	}
	for i, want := range []string{"#a", "#a", "#b", "#b", "#c", "#c"} {
		if got := marks[i].(*model.Circle).Fill; got != want {
			t.Errorf("dot %d fill = %s, want %s", i, got, want)
		}
	}
}

func TestDotsWrap(t *testing.T) {
	segs := model.Segments{{Color: "#a", Pct: 100}}
	marks, _, _, _ := run(t, Dots(), model.DotsSpec{Count: model.Int(5), Radius: model.Float(2), Gap: model.Float(1)}, segs, model.Size{Width: 10, Height: 20})
	// Step 5: two dots per row in a 10px wide canvas.
	third := marks[2].(*model.Circle)
	if third.CX != 2 || third.CY != 7 {
		t.Errorf("third dot at (%v, %v), want (2, 7)", third.CX, third.CY)
	}
}

func TestWaffle(t *testing.T) {
	segs := model.Segments{{Color: "#a", Pct: 30}, {Color: "#b", Pct: 70}}
	marks, _, _, _ := run(t, Waffle(), model.WaffleSpec{}, segs, model.Size{Width: 109, Height: 109})
	if len(marks) != 100 {
		t.Fatalf("len(marks) = %d, want 100", len(marks))
	}
	counts := map[string]int{}
	for _, m := range marks {
		r := m.(*model.Rect)
		counts[r.Fill]++
		if r.Width != 10 || r.Height != 10 {
			t.Errorf("cell %s = %vx%v, want 10x10", r.ID, r.Width, r.Height)
		}
	}
	if counts["#a"] != 30 || counts["#b"] != 70 {
		t.Errorf("counts = %v", counts)
	}
	last := marks[99].(*model.Rect)
	if last.X != 99 || last.Y != 99 {
		t.Errorf("last cell at (%v, %v), want (99, 99)", last.X, last.Y)
	}
}

func TestDonutCenterLabel(t *testing.T) {
	segs := model.Segments{{Name: "A", Color: "#a", Pct: 25}, {Name: "B", Color: "#b", Pct: 75}}
	marks, _, tree, _ := run(t, Donut(), model.DonutSpec{CenterLabel: "75%"}, segs, model.Size{Width: 100, Height: 100})
	if len(marks) != 3 {
		t.Fatalf("len(marks) = %d, want 2 wedges and a label", len(marks))
	}
	label, ok := marks[2].(*model.Text)
	if !ok || label.Text != "75%" || label.X != 50 || label.Y != 50 {
		t.Errorf("label = %+v", marks[2])
	}
	// The 75% wedge sweeps more than half a turn.
	if d := marks[1].(*model.Path).D; !strings.Contains(d, "A50 50 0 1 1") {
		t.Errorf("large wedge d = %s", d)
	}
	if tree.Label != "Donut: 2 segments, largest B 75%" {
		t.Errorf("label = %q", tree.Label)
	}
}

func TestPiePadAngle(t *testing.T) {
	segs := model.Segments{{Color: "#a", Pct: 50}, {Color: "#b", Pct: 50}}
	marks, _, _, _ := run(t, Pie(), model.PieSpec{PadAngle: model.Float(0.1)}, segs, model.Size{Width: 100, Height: 100})
	if len(marks) != 2 {
		t.Fatalf("len(marks) = %d, want 2", len(marks))
	}
	if d := marks[0].(*model.Path).D; !strings.HasSuffix(d, "L50 50Z") {
		t.Errorf("pie wedge should close at the center, d=%s", d)
	}
	single, _, _, _ := run(t, Pie(), model.PieSpec{PadAngle: model.Float(0.1)}, model.Segments{{Color: "#a", Pct: 100}}, model.Size{Width: 100, Height: 100})
	if strings.Count(single[0].(*model.Path).D, "A") != 2 {
		t.Errorf("single pie segment should be a full disc, d=%s", single[0].(*model.Path).D)
	}
}

func TestRingTrackAndGlow(t *testing.T) {
	segs := model.Segments{{Color: "#a", Pct: 60}, {Color: "#b", Pct: 40}}
	marks, defs, _, _ := run(t, Ring(), model.RingSpec{Track: model.Bool(true), Glow: model.Bool(true), StrokeWidth: model.Float(10)}, segs, model.Size{Width: 100, Height: 100})
	if len(marks) != 3 {
		t.Fatalf("len(marks) = %d, want track and 2 arcs", len(marks))
	}
	track := marks[0].(*model.Circle)
	if track.R != 45 || track.DashArray != "" {
		t.Errorf("track = %+v", track)
	}
	arc := marks[1].(*model.Circle)
	if arc.Filter != "url(#ring-glow)" {
		t.Errorf("filter = %q", arc.Filter)
	}
	if len(defs) != 1 || defs[0].(*model.Filter).StdDeviation != 5 {
		t.Errorf("defs = %v", defs)
	}
}

func TestRingTooSmall(t *testing.T) {
	segs := model.Segments{{Color: "#a", Pct: 100}}
	marks, _, _, _ := run(t, Ring(), model.RingSpec{StrokeWidth: model.Float(20)}, segs, model.Size{Width: 10, Height: 10})
	if len(marks) != 0 {
		t.Errorf("len(marks) = %d, want 0", len(marks))
	}
}

func TestTreemap(t *testing.T) {
	segs := model.Segments{{Name: "small", Color: "#a", Pct: 20}, {Name: "big", Color: "#b", Pct: 80}}
	marks, _, _, _ := run(t, Treemap(), model.TreemapSpec{Gap: model.Float(2)}, segs, model.Size{Width: 100, Height: 50})
	if len(marks) != 2 {
		t.Fatalf("len(marks) = %d, want 2", len(marks))
	}
	big := marks[0].(*model.Rect)
	if big.ID != "treemap-tile-1" || big.X != 1 || big.Width != 78 || big.Height != 48 {
		t.Errorf("big tile = %+v", big)
	}
	small := marks[1].(*model.Rect)
	if small.X != 81 || small.Width != 18 {
		t.Errorf("small tile = %+v", small)
	}
}

func TestBullet(t *testing.T) {
	rec := model.Record{Current: model.Float(5), Previous: model.Float(8), Target: model.Float(7.5), Max: model.Float(10)}
	marks, defs, tree, _ := run(t, Bullet(), model.BulletSpec{Hatched: model.Bool(true)}, rec, model.Size{Width: 100, Height: 20})
	if len(marks) != 4 {
		t.Fatalf("len(marks) = %d, want track, previous, current, target", len(marks))
	}
	prev, cur, target := marks[1].(*model.Rect), marks[2].(*model.Rect), marks[3].(*model.Line)
	if prev.Width != 80 || prev.Fill != "url(#bullet-hatch)" {
		t.Errorf("previous = %+v", prev)
	}
	if cur.Width != 50 || cur.Y != 5 || cur.Height != 10 {
		t.Errorf("current = %+v", cur)
	}
	if target.X1 != 75 || target.X2 != 75 {
		t.Errorf("target x = %v", target.X1)
	}
	if len(defs) != 1 || defs[0].DefKind() != model.DefPattern {
		t.Errorf("defs = %v", defs)
	}
	if want := "Bullet: current 5 of 10, previous 8, target 7.5"; tree.Label != want {
		t.Errorf("label = %q, want %q", tree.Label, want)
	}
	if s := tree.Summary.(*model.SeriesSummary); s.Trend != model.TrendDown {
		t.Errorf("trend = %q, want down", s.Trend)
	}
}

func TestBulletDerivedMax(t *testing.T) {
	rec := model.Record{Current: model.Float(3), Target: model.Float(12)}
	marks, _, _, _ := run(t, Bullet(), model.BulletSpec{}, rec, model.Size{Width: 120, Height: 10})
	if cur := marks[1].(*model.Rect); cur.Width != 30 {
		t.Errorf("current width = %v, want 30 on a 0..12 scale", cur.Width)
	}

	over := model.Record{Current: model.Float(50)}
	marks, _, _, _ = run(t, Bullet(), model.BulletSpec{Max: model.Float(10)}, over, model.Size{Width: 100, Height: 10})
	if cur := marks[1].(*model.Rect); cur.Width != 100 {
		t.Errorf("clamped width = %v, want 100", cur.Width)
	}
}

func TestBulletEmpty(t *testing.T) {
	marks, _, tree, _ := run(t, Bullet(), model.BulletSpec{}, model.Record{Target: model.Float(1)}, model.Size{})
	if len(marks) != 0 {
		t.Errorf("len(marks) = %d, want 0", len(marks))
	}
	if s := tree.Summary.(*model.SeriesSummary); s.Count != 0 {
		t.Errorf("summary = %+v, want count 0", s)
	}
}

func TestIDs(t *testing.T) {
	ids := IDs{Prefix: "kpi"}
	if got := ids.Of("bar", 3); got != "kpi-bar-3" {
		t.Errorf("Of() = %q", got)
	}
	if got := ids.One("track"); got != "kpi-track" {
		t.Errorf("One() = %q", got)
	}
}
