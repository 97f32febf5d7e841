package model

import (
	"encoding/json"
	"slices"

	"github.com/matzehuels/microviz/pkg/diag"
)

// Input is everything one compute call depends on.
type Input struct {
	Data  RawData
	Size  Size
	Spec  Spec
	State *State
	Theme *Theme
	// IDPrefix namespaces mark and def ids. Defaults to the chart type tag.
	IDPrefix string
}

// State carries caller-owned interaction state. The engine only reads it.
type State struct {
	Hover    *int  `json:"hover,omitempty"`
	Selected []int `json:"selected,omitempty"`
}

// Emphasized reports whether datum i is hovered or selected.
func (s *State) Emphasized(i int) bool {
	if s == nil || i < 0 {
		return false
	}
	if s.Hover != nil && *s.Hover == i {
		return true
	}
	return slices.Contains(s.Selected, i)
}

// Theme supplies fallback colors. Data colors always win.
type Theme struct {
	Palette []string `json:"palette,omitempty"`
	Track   string   `json:"track,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// DefaultTheme is used for any field a caller's theme leaves empty.
var DefaultTheme = Theme{
	Palette: []string{"#3b82f6", "#ef4444", "#22c55e", "#f59e0b", "#8b5cf6", "#06b6d4"},
	Track:   "#e5e7eb",
	Text:    "#111827",
}

// Resolve fills empty fields of t from DefaultTheme. A nil theme resolves to
// DefaultTheme.
func (t *Theme) Resolve() Theme {
	out := DefaultTheme
	if t == nil {
		return out
	}
	if len(t.Palette) > 0 {
		out.Palette = t.Palette
	}
	if t.Track != "" {
		out.Track = t.Track
	}
	if t.Text != "" {
		out.Text = t.Text
	}
	return out
}

// Color returns the palette entry for index i, cycling.
func (t Theme) Color(i int) string {
	if len(t.Palette) == 0 {
		return DefaultTheme.Palette[i%len(DefaultTheme.Palette)]
	}
	return t.Palette[i%len(t.Palette)]
}

// Stats holds per-call diagnostics.
type Stats struct {
	Warnings []diag.Warning `json:"warnings,omitempty"`
}

// RenderModel is the complete output of one compute call. Marks is never nil.
type RenderModel struct {
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Marks  []Mark    `json:"marks"`
	Defs   []Def     `json:"defs,omitempty"`
	A11y   *A11yTree `json:"a11y,omitempty"`
	Stats  Stats     `json:"stats"`
}

// UnmarshalJSON restores the mark and def unions from their discriminators.
func (m *RenderModel) UnmarshalJSON(data []byte) error {
	var raw struct {
		Width  float64           `json:"width"`
		Height float64           `json:"height"`
		Marks  []json.RawMessage `json:"marks"`
		Defs   []json.RawMessage `json:"defs"`
		A11y   *A11yTree         `json:"a11y"`
		Stats  Stats             `json:"stats"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := RenderModel{
		Width:  raw.Width,
		Height: raw.Height,
		Marks:  make([]Mark, 0, len(raw.Marks)),
		A11y:   raw.A11y,
		Stats:  raw.Stats,
	}
	for _, r := range raw.Marks {
		mk, err := DecodeMark(r)
		if err != nil {
			return err
		}
		out.Marks = append(out.Marks, mk)
	}
	for _, r := range raw.Defs {
		d, err := DecodeDef(r)
		if err != nil {
			return err
		}
		out.Defs = append(out.Defs, d)
	}
	*m = out
	return nil
}

// Warned reports whether the model carries a warning with the given code.
func (m RenderModel) Warned(code diag.Code) bool {
	return diag.Has(m.Stats.Warnings, code)
}
