package engine

import (
	"math"

	"github.com/matzehuels/microviz/pkg/charts"
	"github.com/matzehuels/microviz/pkg/diag"
	"github.com/matzehuels/microviz/pkg/errors"
	"github.com/matzehuels/microviz/pkg/model"
)

// BoundsTolerance is how far a mark may leave the canvas before it is
// reported as out of bounds.
const BoundsTolerance = 0.5

// MaxDimension caps the canvas width and height. Larger sizes are clamped
// with a SIZE_DEFAULTED warning.
const MaxDimension = 4096

// Compute renders one chart. It returns an error only when the spec is
// missing, its type tag is unknown, or the spec variant does not belong to
// the tag's handler. Every data or option problem is reported as a warning
// on the model instead.
func Compute(in model.Input) (model.RenderModel, error) {
	if model.MissingSpec(in.Spec) {
		return model.RenderModel{}, errors.New(errors.ErrCodeInvalidInput, "missing chart spec")
	}
	tag := in.Spec.Type()
	h, ok := registry[tag]
	if !ok {
		return model.RenderModel{}, errors.New(errors.ErrCodeUnknownChartType, "unknown chart type %q", tag)
	}
	if !h.Accepts(in.Spec) {
		return model.RenderModel{}, errors.New(errors.ErrCodeSpecMismatch, "spec %T cannot be rendered as %q", in.Spec, tag)
	}

	var sink diag.Sink
	size, ws := resolveSize(in.Size, h.DefaultSize())
	sink.Add(ws...)
	pad, ws := resolvePad(in.Spec.Base().Pad, h.DefaultPad())
	sink.Add(ws...)
	layout := model.Layout{Width: size.Width, Height: size.Height, Pad: pad}

	opts, ws := h.Options(in.Spec)
	sink.Add(ws...)
	data, ws := h.Normalize(in.Data)
	sink.Add(ws...)

	prefix := in.IDPrefix
	if prefix == "" {
		prefix = string(tag)
	}
	env := charts.Env{
		Spec:    in.Spec,
		Options: opts,
		Layout:  layout,
		Theme:   in.Theme.Resolve(),
		State:   in.State,
		IDs:     charts.IDs{Prefix: prefix},
	}

	marks := []model.Mark{}
	var defs []model.Def
	if h.IsEmpty(data) {
		sink.Add(diag.New(diag.EmptyData, "%s has no data to draw", tag))
	} else {
		var generated []model.Mark
		generated, ws = h.Marks(env, data)
		sink.Add(ws...)
		if h.HasDefs() {
			defs, ws = h.Defs(env, data)
			sink.Add(ws...)
		}
		marks, ws = finish(generated, layout, in.Spec.Base().Class, in.State)
		sink.Add(ws...)
	}

	return model.RenderModel{
		Width:  size.Width,
		Height: size.Height,
		Marks:  marks,
		Defs:   defs,
		A11y:   h.A11y(env, data),
		Stats:  model.Stats{Warnings: sink.Warnings()},
	}, nil
}

func resolveSize(s, def model.Size) (model.Size, []diag.Warning) {
	var ws []diag.Warning
	var w diag.Warning
	s.Width, w = resolveDim("width", s.Width, def.Width)
	if w.Code != "" {
		ws = append(ws, w)
	}
	s.Height, w = resolveDim("height", s.Height, def.Height)
	if w.Code != "" {
		ws = append(ws, w)
	}
	return s, ws
}

// resolveDim defaults an absent dimension silently, defaults an invalid one
// with a warning and clamps one above MaxDimension.
func resolveDim(name string, v, def float64) (float64, diag.Warning) {
	switch {
	case v == 0:
		return def, diag.Warning{}
	case !validDim(v):
		return def, diag.New(diag.SizeDefaulted, "%s %v is invalid, using %v", name, v, def)
	case v > MaxDimension:
		return MaxDimension, diag.New(diag.SizeDefaulted, "%s %v exceeds %v, using %v", name, v, MaxDimension, MaxDimension)
	}
	return v, diag.Warning{}
}

func validDim(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

func resolvePad(p *float64, def float64) (float64, []diag.Warning) {
	if p == nil {
		return def, nil
	}
	if math.IsNaN(*p) || math.IsInf(*p, 0) || *p < 0 {
		return def, []diag.Warning{diag.New(diag.PadDefaulted, "pad %v is invalid, using %v", *p, def)}
	}
	return *p, nil
}

// finish drops marks with non-finite coordinates, reports marks that leave
// the canvas, and applies the style class and interaction state.
func finish(marks []model.Mark, l model.Layout, class string, state *model.State) ([]model.Mark, []diag.Warning) {
	var ws []diag.Warning
	out := make([]model.Mark, 0, len(marks))
	for _, m := range marks {
		if m == nil {
			continue
		}
		if !allFinite(m.Coords()) {
			ws = append(ws, diag.New(diag.NaNCoordinate, "mark %s has a non-finite coordinate and was dropped", m.MarkID()))
			continue
		}
		if !m.Bounds().Within(l.Width, l.Height, BoundsTolerance) {
			ws = append(ws, diag.New(diag.MarkOutOfBounds, "mark %s extends outside the %vx%v canvas", m.MarkID(), l.Width, l.Height))
		}
		p := m.Style()
		if class != "" && p.Class == "" {
			p.Class = class
		}
		if state.Emphasized(p.Datum) {
			p.Emphasis = true
		}
		out = append(out, m)
	}
	return out, ws
}

func allFinite(vals []float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
