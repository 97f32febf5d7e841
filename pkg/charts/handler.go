package charts

import (
	"fmt"

	"github.com/matzehuels/microviz/pkg/a11y"
	"github.com/matzehuels/microviz/pkg/diag"
	"github.com/matzehuels/microviz/pkg/model"
)

// Handler is the type-erased handler set the engine dispatches to.
type Handler interface {
	Type() model.Type
	DefaultPad() float64
	DefaultSize() model.Size
	// Check verifies the handler is internally consistent.
	Check() error
	// Accepts reports whether spec is this handler's variant.
	Accepts(spec model.Spec) bool
	Options(spec model.Spec) (any, []diag.Warning)
	Normalize(raw model.RawData) (any, []diag.Warning)
	IsEmpty(data any) bool
	Marks(env Env, data any) ([]model.Mark, []diag.Warning)
	HasDefs() bool
	Defs(env Env, data any) ([]model.Def, []diag.Warning)
	A11y(env Env, data any) *model.A11yTree
}

// Env is the per-call context handed to handler steps.
type Env struct {
	Spec    model.Spec
	Options any
	Layout  model.Layout
	Theme   model.Theme
	State   *model.State
	IDs     IDs
}

// Frame is the typed view of Env seen by a Chart's steps.
type Frame[S model.Spec, O any] struct {
	Spec   S
	Opts   O
	Layout model.Layout
	Theme  model.Theme
	State  *model.State
	IDs    IDs
}

// Chart describes one chart type with typed spec S, normalized data D and
// resolved options O.
type Chart[S model.Spec, D, O any] struct {
	Tag  model.Type
	Pad  float64
	Size model.Size

	Resolve   func(S) (O, []diag.Warning)
	Normalize func(model.RawData) (D, []diag.Warning)
	Empty     func(D) bool
	Marks     func(Frame[S, O], D) ([]model.Mark, []diag.Warning)
	Defs      func(Frame[S, O], D) ([]model.Def, []diag.Warning)
	A11y      func(Frame[S, O], D) *model.A11yTree
}

// Adapt wraps c as a Handler.
func Adapt[S model.Spec, D, O any](c Chart[S, D, O]) Handler {
	return adapter[S, D, O]{c}
}

type adapter[S model.Spec, D, O any] struct {
	c Chart[S, D, O]
}

func (a adapter[S, D, O]) Type() model.Type        { return a.c.Tag }
func (a adapter[S, D, O]) DefaultPad() float64     { return a.c.Pad }
func (a adapter[S, D, O]) DefaultSize() model.Size { return a.c.Size }
func (a adapter[S, D, O]) HasDefs() bool           { return a.c.Defs != nil }

func (a adapter[S, D, O]) Check() error {
	var zero S
	if zero.Type() != a.c.Tag {
		return fmt.Errorf("chart %q is declared with a %q spec", a.c.Tag, zero.Type())
	}
	if a.c.Resolve == nil || a.c.Normalize == nil || a.c.Empty == nil || a.c.Marks == nil {
		return fmt.Errorf("chart %q is missing a required step", a.c.Tag)
	}
	return nil
}

func (a adapter[S, D, O]) Accepts(spec model.Spec) bool {
	_, ok := asSpec[S](spec)
	return ok
}

func (a adapter[S, D, O]) Options(spec model.Spec) (any, []diag.Warning) {
	s, _ := asSpec[S](spec)
	return a.c.Resolve(s)
}

func (a adapter[S, D, O]) Normalize(raw model.RawData) (any, []diag.Warning) {
	return a.c.Normalize(raw)
}

func (a adapter[S, D, O]) IsEmpty(data any) bool {
	d, ok := data.(D)
	return !ok || a.c.Empty(d)
}

func (a adapter[S, D, O]) Marks(env Env, data any) ([]model.Mark, []diag.Warning) {
	return a.c.Marks(a.frame(env), data.(D))
}

func (a adapter[S, D, O]) Defs(env Env, data any) ([]model.Def, []diag.Warning) {
	if a.c.Defs == nil {
		return nil, nil
	}
	return a.c.Defs(a.frame(env), data.(D))
}

func (a adapter[S, D, O]) A11y(env Env, data any) *model.A11yTree {
	d, _ := data.(D)
	if a.c.A11y != nil {
		return a.c.A11y(a.frame(env), d)
	}
	switch v := any(d).(type) {
	case model.Series:
		return a11y.SeriesTree(a.c.Tag, v)
	case model.Segments:
		return a11y.SegmentsTree(a.c.Tag, v)
	}
	return &model.A11yTree{Label: a11y.Title(a.c.Tag), Role: a11y.Role}
}

func (a adapter[S, D, O]) frame(env Env) Frame[S, O] {
	s, _ := asSpec[S](env.Spec)
	o, _ := env.Options.(O)
	return Frame[S, O]{
		Spec:   s,
		Opts:   o,
		Layout: env.Layout,
		Theme:  env.Theme,
		State:  env.State,
		IDs:    env.IDs,
	}
}

// asSpec accepts both the value and pointer form of a spec variant.
func asSpec[S model.Spec](spec model.Spec) (S, bool) {
	switch v := any(spec).(type) {
	case S:
		return v, true
	case *S:
		if v != nil {
			return *v, true
		}
	}
	var zero S
	return zero, false
}

// IDs formats mark and def ids under one prefix.
type IDs struct {
	Prefix string
}

// Of returns "<prefix>-<role>-<i>".
func (ids IDs) Of(role string, i int) string {
	return fmt.Sprintf("%s-%s-%d", ids.Prefix, role, i)
}

// One returns "<prefix>-<role>" for roles that occur once per chart.
func (ids IDs) One(role string) string {
	return ids.Prefix + "-" + role
}
