package model

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/microviz/pkg/diag"
)

func TestDecodeRawData(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		check func(t *testing.T, d RawData)
	}{
		{
			name: "Series",
			raw:  `[1, 2.5, null, 4]`,
			check: func(t *testing.T, d RawData) {
				s, ok := d.(Series)
				if !ok {
					t.Fatalf("got %T, want Series", d)
				}
				if len(s) != 4 {
					t.Fatalf("len = %d, want 4", len(s))
				}
				if !math.IsNaN(s[2]) {
					t.Errorf("s[2] = %v, want NaN", s[2])
				}
			},
		},
		{
			name: "Segments",
			raw:  `[{"name":"A","color":"#f00","pct":40},{"color":"#0f0","pct":60}]`,
			check: func(t *testing.T, d RawData) {
				s, ok := d.(Segments)
				if !ok {
					t.Fatalf("got %T, want Segments", d)
				}
				if len(s) != 2 || s[0].Name != "A" || s[1].Pct != 60 {
					t.Errorf("segments = %+v", s)
				}
			},
		},
		{
			name: "Record",
			raw:  `{"current": 7, "target": 10}`,
			check: func(t *testing.T, d RawData) {
				r, ok := d.(Record)
				if !ok {
					t.Fatalf("got %T, want Record", d)
				}
				if r.Current == nil || *r.Current != 7 || r.Previous != nil {
					t.Errorf("record = %+v", r)
				}
			},
		},
		{
			name: "EmptyArray",
			raw:  `[]`,
			check: func(t *testing.T, d RawData) {
				if s, ok := d.(Segments); !ok || len(s) != 0 {
					t.Errorf("got %#v, want empty Segments", d)
				}
			},
		},
		{
			name: "Null",
			raw:  `null`,
			check: func(t *testing.T, d RawData) {
				if d != nil {
					t.Errorf("got %#v, want nil", d)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := DecodeRawData(json.RawMessage(tt.raw))
			if err != nil {
				t.Fatalf("DecodeRawData() error: %v", err)
			}
			tt.check(t, d)
		})
	}
}

func TestDecodeRawDataInvalid(t *testing.T) {
	for _, raw := range []string{`"text"`, `[1, "a"]`, `{"current": "x"}`} {
		if _, err := DecodeRawData(json.RawMessage(raw)); err == nil {
			t.Errorf("DecodeRawData(%s) expected error", raw)
		}
	}
}

func TestDecodeSpec(t *testing.T) {
	spec, ok, err := DecodeSpec(TypeDots, json.RawMessage(`{"count": 20, "pad": 3, "class": "x"}`))
	if err != nil || !ok {
		t.Fatalf("DecodeSpec() = %v, %v", ok, err)
	}
	dots, isDots := spec.(DotsSpec)
	if !isDots {
		t.Fatalf("got %T, want DotsSpec", spec)
	}
	if dots.Count == nil || *dots.Count != 20 {
		t.Errorf("Count = %v, want 20", dots.Count)
	}
	if p := spec.Base().Pad; p == nil || *p != 3 {
		t.Errorf("Pad = %v, want 3", p)
	}
	if spec.Base().Class != "x" {
		t.Errorf("Class = %q, want x", spec.Base().Class)
	}

	if _, ok, _ := DecodeSpec("nope", nil); ok {
		t.Error("DecodeSpec(nope) ok = true, want false")
	}

	empty, ok, err := DecodeSpec(TypeRing, nil)
	if err != nil || !ok || empty.Type() != TypeRing {
		t.Errorf("DecodeSpec(ring, nil) = %v, %v, %v", empty, ok, err)
	}
}

func TestLayout(t *testing.T) {
	l := Layout{Width: 100, Height: 20, Pad: 2}
	if l.InnerWidth() != 96 || l.InnerHeight() != 16 {
		t.Errorf("inner = %v x %v, want 96 x 16", l.InnerWidth(), l.InnerHeight())
	}
	tight := Layout{Width: 3, Height: 3, Pad: 5}
	if tight.InnerWidth() != 0 || tight.InnerHeight() != 0 {
		t.Errorf("inner = %v x %v, want 0 x 0", tight.InnerWidth(), tight.InnerHeight())
	}
	if !(Box{-0.4, 0, 100.4, 20}).Within(100, 20, 0.5) {
		t.Error("Within() = false for box inside tolerance")
	}
	if (Box{-1, 0, 10, 10}).Within(100, 20, 0.5) {
		t.Error("Within() = true for box outside tolerance")
	}
}

func TestStateEmphasized(t *testing.T) {
	hover := 2
	s := &State{Hover: &hover, Selected: []int{4}}
	for i, want := range []bool{false, false, true, false, true} {
		if got := s.Emphasized(i); got != want {
			t.Errorf("Emphasized(%d) = %v, want %v", i, got, want)
		}
	}
	var none *State
	if none.Emphasized(0) {
		t.Error("nil state emphasized a datum")
	}
}

func TestThemeResolve(t *testing.T) {
	var nilTheme *Theme
	if got := nilTheme.Resolve(); got.Track != DefaultTheme.Track {
		t.Errorf("Track = %q, want %q", got.Track, DefaultTheme.Track)
	}
	custom := (&Theme{Palette: []string{"#000", "#fff"}}).Resolve()
	if custom.Color(3) != "#fff" {
		t.Errorf("Color(3) = %q, want #fff", custom.Color(3))
	}
	if custom.Text != DefaultTheme.Text {
		t.Errorf("Text = %q, want default", custom.Text)
	}
}

func TestRenderModelRoundTrip(t *testing.T) {
	in := RenderModel{
		Width:  100,
		Height: 10,
		Marks: []Mark{
			&Rect{ID: "r-0", X: 0, Y: 0, Width: 40, Height: 10, Paint: Paint{Fill: "#f00", Datum: 0}},
			&Circle{ID: "c-0", CX: 5, CY: 5, R: 5, Paint: Paint{Stroke: "#0f0", DashArray: "1 2", Datum: 1}},
			&Line{ID: "l-0", X1: 0, Y1: 1, X2: 9, Y2: 1, Paint: Paint{Datum: -1}},
			&Path{ID: "p-0", D: "M0 0L1 1Z", Paint: Paint{Datum: -1}},
			&Text{ID: "t-0", X: 50, Y: 5, Text: "42%", FontSize: 12, Paint: Paint{Datum: -1}},
		},
		Defs: []Def{
			&LinearGradient{ID: "g", Y2: 1, Stops: []Stop{{Offset: 0, Color: "#f00"}}},
			&Pattern{ID: "p", Size: 4, Color: "#000", StrokeWidth: 1},
			&Mask{ID: "m", Width: 10, Height: 10, Fill: URL("g")},
			&ClipRect{ID: "c", Width: 10, Height: 10, RX: 2},
			&Filter{ID: "f", Effect: "glow", StdDeviation: 2},
		},
		A11y: &A11yTree{
			Label:   "Stacked bar",
			Role:    "img",
			Summary: &SegmentSummary{Count: 2, Largest: &Largest{Name: "B", Pct: 60, Label: "B 60%"}},
		},
		Stats: Stats{Warnings: []diag.Warning{diag.New(diag.EmptyData, "no data")}},
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `"type":"circle"`) {
		t.Errorf("marshaled model lacks type discriminator: %s", data)
	}

	var out RenderModel
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	again, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("Marshal() second pass error: %v", err)
	}
	if string(again) != string(data) {
		t.Errorf("round trip changed model:\n got %s\nwant %s", again, data)
	}
	if out.Marks[1].Kind() != KindCircle {
		t.Errorf("Marks[1].Kind() = %v, want circle", out.Marks[1].Kind())
	}
	if _, ok := out.A11y.Summary.(*SegmentSummary); !ok {
		t.Errorf("summary = %T, want *SegmentSummary", out.A11y.Summary)
	}
	if !out.Warned(diag.EmptyData) {
		t.Error("Warned(EMPTY_DATA) = false after round trip")
	}
}

func TestMarkBounds(t *testing.T) {
	tests := []struct {
		mark Mark
		want Box
	}{
		{&Rect{X: 1, Y: 2, Width: 3, Height: 4}, Box{1, 2, 4, 6}},
		{&Circle{CX: 5, CY: 5, R: 2}, Box{3, 3, 7, 7}},
		{&Line{X1: 9, Y1: 1, X2: 2, Y2: 8}, Box{2, 1, 9, 8}},
		{&Path{Box: Box{0, 0, 10, 10}}, Box{0, 0, 10, 10}},
	}
	for _, tt := range tests {
		if got := tt.mark.Bounds(); got != tt.want {
			t.Errorf("%s.Bounds() = %v, want %v", tt.mark.Kind(), got, tt.want)
		}
	}
}

func TestDecodeMarkUnknown(t *testing.T) {
	if _, err := DecodeMark(json.RawMessage(`{"type":"ellipse"}`)); err == nil {
		t.Error("DecodeMark(ellipse) expected error")
	}
	if _, err := DecodeDef(json.RawMessage(`{"type":"radialGradient"}`)); err == nil {
		t.Error("DecodeDef(radialGradient) expected error")
	}
}
