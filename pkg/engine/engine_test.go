package engine

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/microviz/pkg/charts"
	"github.com/matzehuels/microviz/pkg/diag"
	"github.com/matzehuels/microviz/pkg/errors"
	"github.com/matzehuels/microviz/pkg/model"
)

var twoSegments = model.Segments{
	{Color: "#ef4444", Name: "A", Pct: 40},
	{Color: "#22c55e", Name: "B", Pct: 60},
}

var halfHalf = model.Segments{
	{Color: "#ef4444", Name: "A", Pct: 50},
	{Color: "#22c55e", Name: "B", Pct: 50},
}

func mustCompute(t *testing.T, in model.Input) model.RenderModel {
	t.Helper()
	m, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	return m
}

func TestStackedBarScenario(t *testing.T) {
	m := mustCompute(t, model.Input{
		Data: twoSegments,
		Size: model.Size{Width: 100, Height: 10},
		Spec: model.StackedBarSpec{Common: model.Common{Pad: model.Float(0)}},
	})
	if len(m.Marks) != 4 {
		t.Fatalf("len(Marks) = %d, want 4", len(m.Marks))
	}
	for i, mk := range m.Marks {
		if mk.Kind() != model.KindRect {
			t.Errorf("Marks[%d].Kind() = %v, want rect", i, mk.Kind())
		}
	}
	a, b := m.Marks[1].(*model.Rect), m.Marks[2].(*model.Rect)
	if a.X != 0 || a.X+a.Width != 40 || a.Fill != "#ef4444" {
		t.Errorf("A = [%v, %v) fill %s, want [0, 40) #ef4444", a.X, a.X+a.Width, a.Fill)
	}
	if b.X != 40 || b.X+b.Width != 100 || b.Fill != "#22c55e" {
		t.Errorf("B = [%v, %v) fill %s, want [40, 100) #22c55e", b.X, b.X+b.Width, b.Fill)
	}
	if len(m.Stats.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", m.Stats.Warnings)
	}
}

func TestDotsScenario(t *testing.T) {
	m := mustCompute(t, model.Input{
		Data: halfHalf,
		Size: model.Size{Width: 200, Height: 12},
		Spec: model.DotsSpec{Count: model.Int(12), Gap: model.Float(4), Radius: model.Float(6)},
	})
	if len(m.Marks) != 12 {
		t.Fatalf("len(Marks) = %d, want 12", len(m.Marks))
	}
	first, last := m.Marks[0].(*model.Circle), m.Marks[11].(*model.Circle)
	if first.CX != 6 {
		t.Errorf("first dot cx = %v, want 6", first.CX)
	}
	if last.CX != 182 {
		t.Errorf("last dot cx = %v, want 182", last.CX)
	}
	for i, mk := range m.Marks {
		c := mk.(*model.Circle)
		if c.R != 6 {
			t.Errorf("dot %d r = %v, want 6", i, c.R)
		}
		want := "#ef4444"
		if i >= 6 {
			want = "#22c55e"
		}
		if c.Fill != want {
			t.Errorf("dot %d fill = %s, want %s", i, c.Fill, want)
		}
	}
}

func TestRingScenario(t *testing.T) {
	m := mustCompute(t, model.Input{
		Data: halfHalf,
		Size: model.Size{Width: 100, Height: 100},
		Spec: model.RingSpec{GapSize: model.Float(0)},
	})
	if len(m.Marks) != 2 {
		t.Fatalf("len(Marks) = %d, want 2", len(m.Marks))
	}
	a, b := m.Marks[0].(*model.Circle), m.Marks[1].(*model.Circle)
	if a.CX != b.CX || a.CY != b.CY || a.R != b.R {
		t.Errorf("circles differ: %+v vs %+v", a, b)
	}
	for _, c := range []*model.Circle{a, b} {
		if c.DashArray == "" || c.DashOffset == "" {
			t.Errorf("circle %s lacks dash pattern", c.ID)
		}
	}
	if a.DashOffset == b.DashOffset {
		t.Errorf("both dashes start at the same offset %s", a.DashOffset)
	}
}

func TestDonutFullCircle(t *testing.T) {
	m := mustCompute(t, model.Input{
		Data: model.Segments{{Color: "#3b82f6", Pct: 100}},
		Size: model.Size{Width: 80, Height: 80},
		Spec: model.DonutSpec{},
	})
	if len(m.Marks) != 1 {
		t.Fatalf("len(Marks) = %d, want 1", len(m.Marks))
	}
	p, ok := m.Marks[0].(*model.Path)
	if !ok {
		t.Fatalf("mark is %T, want *model.Path", m.Marks[0])
	}
	if got := strings.Count(p.D, "A"); got != 4 {
		t.Errorf("arc commands = %d, want 4 (d=%s)", got, p.D)
	}
}

func TestDonutNearlyFullWedge(t *testing.T) {
	m := mustCompute(t, model.Input{
		Data: model.Segments{{Name: "A", Color: "#3b82f6", Pct: 99.9999}, {Name: "B", Color: "#ef4444", Pct: 0.0001}},
		Size: model.Size{Width: 100, Height: 100},
		Spec: model.DonutSpec{Common: model.Common{Pad: model.Float(0)}},
	})
	p, ok := m.Marks[0].(*model.Path)
	if !ok || p.ID != "donut-wedge-0" {
		t.Fatalf("Marks[0] = %#v, want donut-wedge-0 path", m.Marks[0])
	}
	if got := strings.Count(p.D, "A"); got != 4 {
		t.Errorf("arc commands = %d, want 4 (d=%s)", got, p.D)
	}
}

func TestEmptyData(t *testing.T) {
	segmentTypes := []model.Spec{
		model.StackedBarSpec{}, model.DotsSpec{}, model.WaffleSpec{}, model.DonutSpec{},
		model.PieSpec{}, model.RingSpec{}, model.TreemapSpec{},
	}
	for _, spec := range segmentTypes {
		t.Run(string(spec.Type()), func(t *testing.T) {
			m := mustCompute(t, model.Input{Data: model.Segments{}, Spec: spec})
			if m.Marks == nil || len(m.Marks) != 0 {
				t.Errorf("Marks = %#v, want empty non-nil slice", m.Marks)
			}
			if !m.Warned(diag.EmptyData) {
				t.Errorf("warnings = %v, want EMPTY_DATA", m.Stats.Warnings)
			}
			if m.A11y == nil {
				t.Fatal("A11y = nil, want a degenerate summary")
			}
			if s, ok := m.A11y.Summary.(*model.SegmentSummary); !ok || s.Count != 0 {
				t.Errorf("Summary = %#v, want {Count: 0}", m.A11y.Summary)
			}
		})
	}
}

func TestEmptyAfterNormalization(t *testing.T) {
	m := mustCompute(t, model.Input{
		Data: model.Segments{{Color: "#a", Pct: math.NaN()}, {Pct: 20}},
		Spec: model.PieSpec{},
	})
	if len(m.Marks) != 0 || !m.Warned(diag.EmptyData) {
		t.Errorf("marks = %d, warnings = %v", len(m.Marks), m.Stats.Warnings)
	}
}

func TestDeterminism(t *testing.T) {
	inputs := []model.Input{
		{Data: model.Series{3, 1, 4, 1, 5, 9, 2, 6}, Spec: model.SparklineSpec{Area: model.Bool(true)}},
		{Data: model.Series{3, 1, 4}, Spec: model.BarsSpec{Fade: model.Bool(true)}},
		{Data: twoSegments, Spec: model.StackedBarSpec{Radius: model.Float(3)}},
		{Data: halfHalf, Spec: model.DotsSpec{}},
		{Data: twoSegments, Spec: model.WaffleSpec{}},
		{Data: twoSegments, Spec: model.DonutSpec{CenterLabel: "40%"}},
		{Data: twoSegments, Spec: model.PieSpec{PadAngle: model.Float(0.05)}},
		{Data: twoSegments, Spec: model.RingSpec{Glow: model.Bool(true), Track: model.Bool(true)}},
		{Data: twoSegments, Spec: model.TreemapSpec{Gap: model.Float(2)}},
		{Data: model.Record{Current: model.Float(7), Target: model.Float(9)}, Spec: model.BulletSpec{Hatched: model.Bool(true)}},
	}
	for _, in := range inputs {
		t.Run(string(in.Spec.Type()), func(t *testing.T) {
			first, err := json.Marshal(mustCompute(t, in))
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			for range 5 {
				again, _ := json.Marshal(mustCompute(t, in))
				if string(again) != string(first) {
					t.Fatalf("Compute() not deterministic:\n%s\n%s", first, again)
				}
			}
		})
	}
}

func TestUniqueMarkIDs(t *testing.T) {
	for _, tag := range Types() {
		h, _ := Lookup(tag)
		var data model.RawData = twoSegments
		switch tag {
		case model.TypeSparkline, model.TypeBars:
			data = model.Series{1, 2, 3}
		case model.TypeBullet:
			data = model.Record{Current: model.Float(1), Previous: model.Float(2), Target: model.Float(3)}
		}
		spec, _, _ := model.DecodeSpec(h.Type(), nil)
		m := mustCompute(t, model.Input{Data: data, Spec: spec, IDPrefix: "c1"})
		seen := map[string]bool{}
		for _, mk := range m.Marks {
			if seen[mk.MarkID()] {
				t.Errorf("%s: duplicate id %s", tag, mk.MarkID())
			}
			if !strings.HasPrefix(mk.MarkID(), "c1-") {
				t.Errorf("%s: id %s lacks prefix", tag, mk.MarkID())
			}
			seen[mk.MarkID()] = true
		}
		if len(m.Marks) == 0 {
			t.Errorf("%s: no marks", tag)
		}
	}
}

func TestPixelSnapIntegrality(t *testing.T) {
	tests := []model.Input{
		{Data: model.Series{3, 7, 1, 9, 4, 6, 2}, Size: model.Size{Width: 101, Height: 23}, Spec: model.BarsSpec{Gap: model.Float(2)}},
		{Data: model.Series{0.3, 0.7, 0.11}, Size: model.Size{Width: 97, Height: 13}, Spec: model.BarsSpec{Common: model.Common{Pad: model.Float(1)}}},
		{Data: twoSegments, Size: model.Size{Width: 97, Height: 61}, Spec: model.WaffleSpec{Rows: model.Int(7), Cols: model.Int(9)}},
	}
	for _, in := range tests {
		m := mustCompute(t, in)
		for _, mk := range m.Marks {
			r := mk.(*model.Rect)
			for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
				if v != math.Trunc(v) {
					t.Errorf("%s: %s has non-integer coordinate %v", in.Spec.Type(), r.ID, v)
				}
			}
		}
	}
}

func TestUnknownType(t *testing.T) {
	_, err := Compute(model.Input{Spec: fakeSpec{}})
	if !errors.Is(err, errors.ErrCodeUnknownChartType) {
		t.Errorf("Compute(unknown) error = %v, want UNKNOWN_CHART_TYPE", err)
	}
	_, err = Compute(model.Input{Spec: lyingSpec{}})
	if !errors.Is(err, errors.ErrCodeSpecMismatch) {
		t.Errorf("Compute(mismatch) error = %v, want SPEC_MISMATCH", err)
	}
	_, err = Compute(model.Input{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Compute(nil spec) error = %v, want INVALID_INPUT", err)
	}
}

type fakeSpec struct{ model.Common }

func (fakeSpec) Type() model.Type { return "gauge" }

type lyingSpec struct{ model.Common }

func (lyingSpec) Type() model.Type { return model.TypeDots }

func TestPointerSpec(t *testing.T) {
	m := mustCompute(t, model.Input{Data: halfHalf, Spec: &model.DotsSpec{Count: model.Int(4)}})
	if len(m.Marks) != 4 {
		t.Errorf("len(Marks) = %d, want 4", len(m.Marks))
	}
}

func TestNilPointerSpec(t *testing.T) {
	specs := []model.Spec{
		(*model.DonutSpec)(nil),
		(*model.DotsSpec)(nil),
		(*model.SparklineSpec)(nil),
	}
	for _, spec := range specs {
		_, err := Compute(model.Input{Data: halfHalf, Spec: spec})
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Compute(%T nil) error = %v, want INVALID_INPUT", spec, err)
		}
	}
}

func TestWarningCap(t *testing.T) {
	// 100 dots in a 12px tall canvas: every row after the first is out of bounds.
	m := mustCompute(t, model.Input{
		Data: halfHalf,
		Size: model.Size{Width: 200, Height: 12},
		Spec: model.DotsSpec{Count: model.Int(100)},
	})
	if got := len(m.Stats.Warnings); got != diag.MaxWarnings {
		t.Errorf("len(Warnings) = %d, want %d", got, diag.MaxWarnings)
	}
	if len(m.Marks) != 100 {
		t.Errorf("out-of-bounds marks were dropped: %d", len(m.Marks))
	}
}

func TestNaNCoordinate(t *testing.T) {
	m := mustCompute(t, model.Input{
		Data: model.Series{1e308, -1e308},
		Spec: model.BarsSpec{},
	})
	if !m.Warned(diag.NaNCoordinate) {
		t.Errorf("warnings = %v, want NAN_COORDINATE", m.Stats.Warnings)
	}
	for _, mk := range m.Marks {
		for _, v := range mk.Coords() {
			if math.IsNaN(v) {
				t.Errorf("mark %s kept a NaN coordinate", mk.MarkID())
			}
		}
	}
}

func TestDefaults(t *testing.T) {
	m := mustCompute(t, model.Input{Data: model.Series{1, 2}, Spec: model.SparklineSpec{}})
	if m.Width != 100 || m.Height != 24 {
		t.Errorf("size = %vx%v, want 100x24", m.Width, m.Height)
	}
	if len(m.Stats.Warnings) != 0 {
		t.Errorf("absent size warned: %v", m.Stats.Warnings)
	}

	m = mustCompute(t, model.Input{
		Data: model.Series{1, 2},
		Size: model.Size{Width: -5, Height: math.Inf(1)},
		Spec: model.SparklineSpec{Common: model.Common{Pad: model.Float(math.NaN())}, StrokeWidth: model.Float(-1)},
	})
	for _, code := range []diag.Code{diag.SizeDefaulted, diag.PadDefaulted, diag.StrokeWidthDefaulted} {
		if !m.Warned(code) {
			t.Errorf("warnings = %v, want %s", m.Stats.Warnings, code)
		}
	}
	if m.Width != 100 || m.Height != 24 {
		t.Errorf("size = %vx%v, want defaults", m.Width, m.Height)
	}
}

func TestSizeClamped(t *testing.T) {
	m := mustCompute(t, model.Input{
		Data: twoSegments,
		Size: model.Size{Width: 1e5, Height: 1e300},
		Spec: model.StackedBarSpec{},
	})
	if m.Width != MaxDimension || m.Height != MaxDimension {
		t.Errorf("size = %vx%v, want %vx%v", m.Width, m.Height, MaxDimension, MaxDimension)
	}
	n := 0
	for _, w := range m.Stats.Warnings {
		if w.Code == diag.SizeDefaulted {
			n++
		}
	}
	if n != 2 {
		t.Errorf("SIZE_DEFAULTED count = %d, want 2 (%v)", n, m.Stats.Warnings)
	}

	m = mustCompute(t, model.Input{
		Data: twoSegments,
		Size: model.Size{Width: MaxDimension, Height: 10},
		Spec: model.StackedBarSpec{},
	})
	if m.Warned(diag.SizeDefaulted) {
		t.Errorf("size at the cap warned: %v", m.Stats.Warnings)
	}
}

func TestClassAndEmphasis(t *testing.T) {
	hover := 1
	m := mustCompute(t, model.Input{
		Data:  twoSegments,
		Spec:  model.StackedBarSpec{Common: model.Common{Class: "mv"}},
		State: &model.State{Hover: &hover},
	})
	for _, mk := range m.Marks {
		p := mk.Style()
		if p.Class != "mv" {
			t.Errorf("%s class = %q, want mv", mk.MarkID(), p.Class)
		}
		if p.Emphasis != (p.Datum == 1) {
			t.Errorf("%s emphasis = %v with datum %d", mk.MarkID(), p.Emphasis, p.Datum)
		}
	}
}

func TestShapeMismatchDegrades(t *testing.T) {
	m := mustCompute(t, model.Input{Data: model.Series{1, 2, 3}, Spec: model.DonutSpec{}})
	if len(m.Marks) != 0 {
		t.Errorf("len(Marks) = %d, want 0", len(m.Marks))
	}
	if !m.Warned(diag.DataShapeMismatch) || !m.Warned(diag.EmptyData) {
		t.Errorf("warnings = %v", m.Stats.Warnings)
	}
}

func TestTypes(t *testing.T) {
	types := Types()
	if len(types) != 10 {
		t.Fatalf("len(Types()) = %d, want 10", len(types))
	}
	for i := 1; i < len(types); i++ {
		if types[i-1] >= types[i] {
			t.Errorf("Types() not sorted: %v", types)
		}
	}
	if _, ok := Lookup(model.TypeTreemap); !ok {
		t.Error("Lookup(treemap) failed")
	}
}

func TestBuildRegistry(t *testing.T) {
	if _, err := buildRegistry([]charts.Handler{charts.Ring(), charts.Ring()}); err == nil {
		t.Error("buildRegistry() accepted a duplicate tag")
	}
	if _, err := buildRegistry([]charts.Handler{charts.Dots(), nil}); err == nil {
		t.Error("buildRegistry() accepted a nil handler")
	}
	table, err := buildRegistry(charts.All())
	if err != nil {
		t.Fatalf("buildRegistry(All) error: %v", err)
	}
	if len(table) != len(charts.All()) {
		t.Errorf("len(table) = %d, want %d", len(table), len(charts.All()))
	}
	for tag, h := range table {
		if h.Type() != tag {
			t.Errorf("handler under %q declares %q", tag, h.Type())
		}
	}
}
