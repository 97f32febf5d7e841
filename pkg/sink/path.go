package sink

import (
	"fmt"
	"math"
	"strconv"
)

// pathTracer is the subset of *gg.Context used to trace path data.
type pathTracer interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
}

type pathCmd struct {
	op   byte
	args []float64
}

var pathArity = map[byte]int{'M': 2, 'L': 2, 'A': 7, 'Z': 0}

// parsePath reads the absolute M, L, A and Z commands the geometry package
// emits. Repeated argument groups after a command repeat it, with extra pairs
// after M treated as L.
func parsePath(d string) ([]pathCmd, error) {
	var cmds []pathCmd
	var cur *pathCmd
	for i := 0; i < len(d); {
		c := d[i]
		switch {
		case c == ' ' || c == ',' || c == '\n' || c == '\t':
			i++
		case c == 'M' || c == 'L' || c == 'A' || c == 'Z':
			cmds = append(cmds, pathCmd{op: c})
			cur = &cmds[len(cmds)-1]
			i++
		case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
			if cur == nil {
				return nil, fmt.Errorf("path data starts with a number")
			}
			j := i + 1
			for j < len(d) && isNumByte(d[j], d[j-1]) {
				j++
			}
			v, err := strconv.ParseFloat(d[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("path number %q: %w", d[i:j], err)
			}
			cur.args = append(cur.args, v)
			i = j
		default:
			return nil, fmt.Errorf("unsupported path command %q", c)
		}
	}

	var out []pathCmd
	for _, c := range cmds {
		n := pathArity[c.op]
		if n == 0 {
			if len(c.args) != 0 {
				return nil, fmt.Errorf("close command takes no arguments")
			}
			out = append(out, c)
			continue
		}
		if len(c.args) == 0 || len(c.args)%n != 0 {
			return nil, fmt.Errorf("%c needs a multiple of %d arguments, got %d", c.op, n, len(c.args))
		}
		op := c.op
		for k := 0; k < len(c.args); k += n {
			out = append(out, pathCmd{op: op, args: c.args[k : k+n]})
			if op == 'M' {
				op = 'L'
			}
		}
	}
	return out, nil
}

func isNumByte(c, prev byte) bool {
	switch {
	case c >= '0' && c <= '9', c == '.', c == 'e', c == 'E':
		return true
	case c == '-' || c == '+':
		return prev == 'e' || prev == 'E'
	}
	return false
}

// tracePath parses d and traces it onto t, flattening arcs into lines.
func tracePath(t pathTracer, d string) error {
	cmds, err := parsePath(d)
	if err != nil {
		return err
	}
	var x, y, sx, sy float64
	for _, c := range cmds {
		switch c.op {
		case 'M':
			x, y = c.args[0], c.args[1]
			sx, sy = x, y
			t.MoveTo(x, y)
		case 'L':
			x, y = c.args[0], c.args[1]
			t.LineTo(x, y)
		case 'A':
			ex, ey := c.args[5], c.args[6]
			for _, p := range flattenArc(x, y, c.args[0], c.args[3] != 0, c.args[4] != 0, ex, ey) {
				t.LineTo(p[0], p[1])
			}
			x, y = ex, ey
		case 'Z':
			t.ClosePath()
			x, y = sx, sy
		}
	}
	return nil
}

// flattenArc converts an SVG endpoint arc of radius r into line vertices,
// ending exactly at (x2, y2).
func flattenArc(x1, y1, r float64, large, sweep bool, x2, y2 float64) [][2]float64 {
	end := [][2]float64{{x2, y2}}
	if x1 == x2 && y1 == y2 {
		return nil
	}
	r = math.Abs(r)
	if r == 0 {
		return end
	}

	hx, hy := (x1-x2)/2, (y1-y2)/2
	d2 := hx*hx + hy*hy
	if d2 > r*r {
		r = math.Sqrt(d2)
	}
	coef := math.Sqrt(math.Max(0, (r*r-d2)/d2))
	if large == sweep {
		coef = -coef
	}
	cxp, cyp := coef*hy, -coef*hx
	cx, cy := cxp+(x1+x2)/2, cyp+(y1+y2)/2

	start := math.Atan2(hy-cyp, hx-cxp)
	delta := math.Atan2(-hy-cyp, -hx-cxp) - start
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	n := max(1, int(math.Ceil(math.Abs(delta)/arcStep)))
	pts := make([][2]float64, 0, n)
	for i := 1; i < n; i++ {
		a := start + delta*float64(i)/float64(n)
		pts = append(pts, [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)})
	}
	return append(pts, end[0])
}
