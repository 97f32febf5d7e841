package charts

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/microviz/pkg/a11y"
	"github.com/matzehuels/microviz/pkg/diag"
	"github.com/matzehuels/microviz/pkg/model"
	"github.com/matzehuels/microviz/pkg/normalize"
)

// Datum indices of bullet marks.
const (
	bulletCurrent = iota
	bulletPrevious
	bulletTarget
)

type bulletOpts struct {
	Max     *float64 // nil means derive from the record
	Hatched bool
}

// Bullet draws the current value as a bar against the previous value and a
// target marker on a shared linear scale.
func Bullet() Handler {
	return Adapt(Chart[model.BulletSpec, model.Record, bulletOpts]{
		Tag:  model.TypeBullet,
		Pad:  0,
		Size: model.Size{Width: 120, Height: 16},
		Resolve: func(s model.BulletSpec) (bulletOpts, []diag.Warning) {
			var c coerce
			o := bulletOpts{Hatched: boolOr(s.Hatched, false)}
			if s.Max != nil {
				if m := c.float("max", s.Max, 0, positive, diag.MaxDefaulted); m > 0 {
					o.Max = &m
				}
			}
			return o, c.ws
		},
		Normalize: normalize.RecordFrom,
		Empty:     func(r model.Record) bool { return r.Current == nil },
		Marks:     bulletMarks,
		Defs: func(f Frame[model.BulletSpec, bulletOpts], _ model.Record) ([]model.Def, []diag.Warning) {
			if !f.Opts.Hatched {
				return nil, nil
			}
			return []model.Def{&model.Pattern{
				ID:          f.IDs.One("hatch"),
				Size:        4,
				Angle:       45,
				Color:       colorOr(f.Spec.Color, f.Theme.Color(0)),
				StrokeWidth: 1,
			}}, nil
		},
		A11y: bulletA11y,
	})
}

// bulletMax is the scale maximum: the option, else the record's max, else
// the largest value present.
func bulletMax(o bulletOpts, r model.Record) float64 {
	if o.Max != nil {
		return *o.Max
	}
	if r.Max != nil && *r.Max > 0 {
		return *r.Max
	}
	m := 0.0
	for _, v := range []*float64{r.Current, r.Previous, r.Target} {
		if v != nil {
			m = max(m, *v)
		}
	}
	if m <= 0 {
		return 1
	}
	return m
}

func bulletMarks(f Frame[model.BulletSpec, bulletOpts], r model.Record) ([]model.Mark, []diag.Warning) {
	l := f.Layout
	color := colorOr(f.Spec.Color, f.Theme.Color(0))
	top := max(0, bulletMax(f.Opts, r))
	scale := func(v float64) float64 {
		return min(max(v, 0), top) / top * l.InnerWidth()
	}

	marks := []model.Mark{&model.Rect{
		ID:     f.IDs.One("track"),
		X:      l.X0(),
		Y:      l.Y0(),
		Width:  l.InnerWidth(),
		Height: l.InnerHeight(),
		Paint:  model.Paint{Fill: f.Theme.Track, Datum: -1},
	}}
	if r.Previous != nil {
		p := model.Paint{Fill: color, Opacity: model.Float(0.35), Datum: bulletPrevious}
		if f.Opts.Hatched {
			p = model.Paint{Fill: model.URL(f.IDs.One("hatch")), Datum: bulletPrevious}
		}
		marks = append(marks, &model.Rect{
			ID:     f.IDs.One("previous"),
			X:      l.X0(),
			Y:      l.Y0(),
			Width:  scale(*r.Previous),
			Height: l.InnerHeight(),
			Paint:  p,
		})
	}
	marks = append(marks, &model.Rect{
		ID:     f.IDs.One("current"),
		X:      l.X0(),
		Y:      l.Y0() + l.InnerHeight()/4,
		Width:  scale(*r.Current),
		Height: l.InnerHeight() / 2,
		Paint:  model.Paint{Fill: color, Datum: bulletCurrent},
	})
	if r.Target != nil {
		x := l.X0() + scale(*r.Target)
		marks = append(marks, &model.Line{
			ID: f.IDs.One("target"),
			X1: x, Y1: l.Y0(),
			X2: x, Y2: l.Y0() + l.InnerHeight(),
			Paint: model.Paint{Stroke: f.Theme.Text, StrokeWidth: 2, Datum: bulletTarget},
		})
	}
	return marks, nil
}

func bulletA11y(f Frame[model.BulletSpec, bulletOpts], r model.Record) *model.A11yTree {
	title := a11y.Title(model.TypeBullet)
	if r.Current == nil {
		return &model.A11yTree{Label: title + ": no data", Role: a11y.Role, Summary: a11y.Series(nil)}
	}

	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	label := fmt.Sprintf("%s: current %s of %s", title, num(*r.Current), num(bulletMax(f.Opts, r)))
	items := []model.A11yItem{{Label: "Current " + num(*r.Current)}}
	series := model.Series{*r.Current}
	if r.Previous != nil {
		label += ", previous " + num(*r.Previous)
		items = append(items, model.A11yItem{Label: "Previous " + num(*r.Previous)})
		series = model.Series{*r.Previous, *r.Current}
	}
	if r.Target != nil {
		label += ", target " + num(*r.Target)
		items = append(items, model.A11yItem{Label: "Target " + num(*r.Target)})
	}
	return &model.A11yTree{Label: label, Role: a11y.Role, Items: items, Summary: a11y.Series(series)}
}
