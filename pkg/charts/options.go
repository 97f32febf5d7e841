package charts

import (
	"math"

	"github.com/matzehuels/microviz/pkg/diag"
)

// coerce resolves optional spec fields. Invalid values fall back to the
// default and leave a warning; it is local to one Resolve call.
type coerce struct {
	ws []diag.Warning
}

func (c *coerce) float(name string, v *float64, def float64, valid func(float64) bool, code diag.Code) float64 {
	if v == nil {
		return def
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || (valid != nil && !valid(*v)) {
		c.ws = append(c.ws, diag.New(code, "%s %v is out of range, using %v", name, *v, def))
		return def
	}
	return *v
}

func (c *coerce) int(name string, v *int, def int, valid func(int) bool, code diag.Code) int {
	if v == nil {
		return def
	}
	if valid != nil && !valid(*v) {
		c.ws = append(c.ws, diag.New(code, "%s %d is out of range, using %d", name, *v, def))
		return def
	}
	return *v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func positive(v float64) bool    { return v > 0 }
func nonNegative(v float64) bool { return v >= 0 }

func between(lo, hi float64) func(float64) bool {
	return func(v float64) bool { return v >= lo && v <= hi }
}

func intBetween(lo, hi int) func(int) bool {
	return func(v int) bool { return v >= lo && v <= hi }
}

func colorOr(c, def string) string {
	if c == "" {
		return def
	}
	return c
}
