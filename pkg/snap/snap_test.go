package snap

import (
	"math"
	"testing"
)

func TestIntegral(t *testing.T) {
	tests := []struct {
		vals []float64
		want bool
	}{
		{[]float64{0, 1, 200}, true},
		{[]float64{1 + 1e-7}, true},
		{[]float64{1.5}, false},
		{[]float64{2, 0.001}, false},
		{[]float64{math.NaN()}, false},
		{[]float64{math.Inf(1)}, false},
		{nil, true},
	}
	for _, tt := range tests {
		if got := Integral(tt.vals...); got != tt.want {
			t.Errorf("Integral(%v) = %v, want %v", tt.vals, got, tt.want)
		}
	}
}

func TestColumnsInteger(t *testing.T) {
	tests := []struct {
		x0, width float64
		n         int
		gap       float64
	}{
		{0, 100, 3, 0},
		{2, 96, 7, 1},
		{0, 10, 4, 2},
		{0, 13, 13, 0},
		{5, 50, 9, 3},
	}
	for _, tt := range tests {
		cols, mode := Columns(tt.x0, tt.width, tt.n, tt.gap)
		if mode != Integer {
			t.Fatalf("Columns(%v) mode = %v, want integer", tt, mode)
		}
		avail := tt.width - tt.gap*float64(tt.n-1)
		var sum float64
		minW, maxW := math.Inf(1), math.Inf(-1)
		for i, c := range cols {
			if c.X != math.Trunc(c.X) || c.Width != math.Trunc(c.Width) {
				t.Errorf("col %d = %+v is not integral", i, c)
			}
			if i > 0 {
				prev := cols[i-1]
				if c.X != prev.X+prev.Width+tt.gap {
					t.Errorf("col %d starts at %v, want %v", i, c.X, prev.X+prev.Width+tt.gap)
				}
			}
			sum += c.Width
			minW, maxW = min(minW, c.Width), max(maxW, c.Width)
		}
		if sum != avail {
			t.Errorf("Columns(%v) widths sum = %v, want %v", tt, sum, avail)
		}
		if maxW-minW > 1 {
			t.Errorf("Columns(%v) widths differ by %v", tt, maxW-minW)
		}
		last := cols[len(cols)-1]
		if last.X+last.Width != tt.x0+tt.width {
			t.Errorf("Columns(%v) ends at %v, want %v", tt, last.X+last.Width, tt.x0+tt.width)
		}
	}
}

func TestColumnsFloat(t *testing.T) {
	cols, mode := Columns(0, 10.5, 3, 0)
	if mode != Float {
		t.Fatalf("mode = %v, want float", mode)
	}
	for i, c := range cols {
		if math.Abs(c.Width-3.5) > 1e-9 {
			t.Errorf("col %d width = %v, want 3.5", i, c.Width)
		}
	}
	if cols[2].X != 7 {
		t.Errorf("col 2 x = %v, want 7", cols[2].X)
	}
}

func TestColumnsEmpty(t *testing.T) {
	if cols, _ := Columns(0, 10, 0, 1); cols != nil {
		t.Errorf("Columns(n=0) = %v, want nil", cols)
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{12, "12"},
		{-3, "-3"},
		{1.5, "1.50"},
		{1.234, "1.23"},
		{1.999, "2"},
		{-0.001, "0"},
		{0.125, "0.13"},
	}
	for _, tt := range tests {
		if got := Num(tt.v); got != tt.want {
			t.Errorf("Num(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestModeRound(t *testing.T) {
	if got := Integer.Round(2.6); got != 3 {
		t.Errorf("Integer.Round(2.6) = %v, want 3", got)
	}
	if got := Float.Round(2.6); got != 2.6 {
		t.Errorf("Float.Round(2.6) = %v, want 2.6", got)
	}
}
