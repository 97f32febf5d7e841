package model

import (
	"encoding/json"
	"fmt"
)

// Kind identifies a mark variant.
type Kind string

// Mark kinds.
const (
	KindRect   Kind = "rect"
	KindCircle Kind = "circle"
	KindLine   Kind = "line"
	KindPath   Kind = "path"
	KindText   Kind = "text"
)

// Mark is one drawable primitive. MarkID is stable for identical inputs and
// unique within a RenderModel.
type Mark interface {
	MarkID() string
	Kind() Kind
	// Bounds returns the geometric extent of the mark, ignoring stroke width.
	Bounds() Box
	// Coords returns every numeric coordinate of the mark, for finiteness checks.
	Coords() []float64
	Style() *Paint
}

// Paint holds the optional paint and style fields shared by all marks.
type Paint struct {
	Fill        string   `json:"fill,omitempty"`
	Stroke      string   `json:"stroke,omitempty"`
	StrokeWidth float64  `json:"strokeWidth,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty"`
	DashArray   string   `json:"dashArray,omitempty"`
	DashOffset  string   `json:"dashOffset,omitempty"`
	LineCap     string   `json:"lineCap,omitempty"`
	Transform   string   `json:"transform,omitempty"`
	ClipPath    string   `json:"clipPath,omitempty"`
	Mask        string   `json:"mask,omitempty"`
	Filter      string   `json:"filter,omitempty"`
	Class       string   `json:"class,omitempty"`
	Emphasis    bool     `json:"emphasis,omitempty"`
	// Datum is the index of the input item this mark represents, or -1.
	Datum int `json:"datum"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	RX     float64 `json:"rx,omitempty"`
	Paint
}

// Circle is a circle, optionally stroked with a dash pattern.
type Circle struct {
	ID string  `json:"id"`
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	R  float64 `json:"r"`
	Paint
}

// Line is a straight segment.
type Line struct {
	ID string  `json:"id"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
	Paint
}

// Path is arbitrary path data in SVG syntax.
type Path struct {
	ID string `json:"id"`
	D  string `json:"d"`
	// Box is the precomputed bounding box; it is not serialized.
	Box Box `json:"-"`
	Paint
}

// Text is a positioned label. The engine never measures text.
type Text struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Text     string  `json:"text"`
	FontSize float64 `json:"fontSize"`
	Anchor   string  `json:"anchor,omitempty"`
	Baseline string  `json:"baseline,omitempty"`
	Paint
}

func (m *Rect) MarkID() string   { return m.ID }
func (m *Circle) MarkID() string { return m.ID }
func (m *Line) MarkID() string   { return m.ID }
func (m *Path) MarkID() string   { return m.ID }
func (m *Text) MarkID() string   { return m.ID }

func (*Rect) Kind() Kind   { return KindRect }
func (*Circle) Kind() Kind { return KindCircle }
func (*Line) Kind() Kind   { return KindLine }
func (*Path) Kind() Kind   { return KindPath }
func (*Text) Kind() Kind   { return KindText }

func (m *Rect) Style() *Paint   { return &m.Paint }
func (m *Circle) Style() *Paint { return &m.Paint }
func (m *Line) Style() *Paint   { return &m.Paint }
func (m *Path) Style() *Paint   { return &m.Paint }
func (m *Text) Style() *Paint   { return &m.Paint }

func (m *Rect) Bounds() Box { return Box{m.X, m.Y, m.X + m.Width, m.Y + m.Height} }
func (m *Circle) Bounds() Box {
	return Box{m.CX - m.R, m.CY - m.R, m.CX + m.R, m.CY + m.R}
}
func (m *Line) Bounds() Box {
	return Box{min(m.X1, m.X2), min(m.Y1, m.Y2), max(m.X1, m.X2), max(m.Y1, m.Y2)}
}
func (m *Path) Bounds() Box { return m.Box }
func (m *Text) Bounds() Box { return Box{m.X, m.Y, m.X, m.Y} }

func (m *Rect) Coords() []float64   { return []float64{m.X, m.Y, m.Width, m.Height, m.RX} }
func (m *Circle) Coords() []float64 { return []float64{m.CX, m.CY, m.R} }
func (m *Line) Coords() []float64   { return []float64{m.X1, m.Y1, m.X2, m.Y2} }
func (m *Path) Coords() []float64   { return []float64{m.Box.X0, m.Box.Y0, m.Box.X1, m.Box.Y1} }
func (m *Text) Coords() []float64   { return []float64{m.X, m.Y, m.FontSize} }

func (m *Rect) MarshalJSON() ([]byte, error) {
	type alias Rect
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*alias
	}{KindRect, (*alias)(m)})
}

func (m *Circle) MarshalJSON() ([]byte, error) {
	type alias Circle
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*alias
	}{KindCircle, (*alias)(m)})
}

func (m *Line) MarshalJSON() ([]byte, error) {
	type alias Line
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*alias
	}{KindLine, (*alias)(m)})
}

func (m *Path) MarshalJSON() ([]byte, error) {
	type alias Path
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*alias
	}{KindPath, (*alias)(m)})
}

func (m *Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*alias
	}{KindText, (*alias)(m)})
}

// DecodeMark decodes one JSON mark using its "type" discriminator.
func DecodeMark(raw json.RawMessage) (Mark, error) {
	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	var m Mark
	switch head.Type {
	case KindRect:
		m = &Rect{}
	case KindCircle:
		m = &Circle{}
	case KindLine:
		m = &Line{}
	case KindPath:
		m = &Path{}
	case KindText:
		m = &Text{}
	default:
		return nil, fmt.Errorf("unknown mark type %q", head.Type)
	}
	// The variants define MarshalJSON only, so Unmarshal fills fields directly.
	if err := json.Unmarshal(raw, m); err != nil {
		return nil, fmt.Errorf("decode %s mark: %w", head.Type, err)
	}
	return m, nil
}
