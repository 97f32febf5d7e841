package model

import (
	"encoding/json"
	"fmt"
)

// DefKind identifies a def variant.
type DefKind string

// Def kinds.
const (
	DefLinearGradient DefKind = "linearGradient"
	DefPattern        DefKind = "pattern"
	DefMask           DefKind = "mask"
	DefClipRect       DefKind = "clipRect"
	DefFilter         DefKind = "filter"
)

// Def is a reusable paint resource referenced by id from marks.
type Def interface {
	DefID() string
	DefKind() DefKind
}

// Stop is one color stop of a gradient.
type Stop struct {
	Offset  float64  `json:"offset"`
	Color   string   `json:"color"`
	Opacity *float64 `json:"opacity,omitempty"`
}

// LinearGradient spans from (X1,Y1) to (X2,Y2) in bounding-box fractions.
type LinearGradient struct {
	ID    string  `json:"id"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Stops []Stop  `json:"stops"`
}

// Pattern is a diagonal hatch tile.
type Pattern struct {
	ID          string  `json:"id"`
	Size        float64 `json:"size"`
	Angle       float64 `json:"angle"`
	Color       string  `json:"color"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// Mask covers a rectangle with a fill (usually a gradient reference).
type Mask struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   string  `json:"fill"`
}

// ClipRect clips marks to a (possibly rounded) rectangle.
type ClipRect struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	RX     float64 `json:"rx,omitempty"`
}

// Filter is a blur-based effect.
type Filter struct {
	ID           string  `json:"id"`
	Effect       string  `json:"effect"` // "glow" or "shadow"
	StdDeviation float64 `json:"stdDeviation"`
	Color        string  `json:"color,omitempty"`
}

func (d *LinearGradient) DefID() string { return d.ID }
func (d *Pattern) DefID() string        { return d.ID }
func (d *Mask) DefID() string           { return d.ID }
func (d *ClipRect) DefID() string       { return d.ID }
func (d *Filter) DefID() string         { return d.ID }

func (*LinearGradient) DefKind() DefKind { return DefLinearGradient }
func (*Pattern) DefKind() DefKind        { return DefPattern }
func (*Mask) DefKind() DefKind           { return DefMask }
func (*ClipRect) DefKind() DefKind       { return DefClipRect }
func (*Filter) DefKind() DefKind         { return DefFilter }

func (d *LinearGradient) MarshalJSON() ([]byte, error) {
	type alias LinearGradient
	return json.Marshal(struct {
		Type DefKind `json:"type"`
		*alias
	}{DefLinearGradient, (*alias)(d)})
}

func (d *Pattern) MarshalJSON() ([]byte, error) {
	type alias Pattern
	return json.Marshal(struct {
		Type DefKind `json:"type"`
		*alias
	}{DefPattern, (*alias)(d)})
}

func (d *Mask) MarshalJSON() ([]byte, error) {
	type alias Mask
	return json.Marshal(struct {
		Type DefKind `json:"type"`
		*alias
	}{DefMask, (*alias)(d)})
}

func (d *ClipRect) MarshalJSON() ([]byte, error) {
	type alias ClipRect
	return json.Marshal(struct {
		Type DefKind `json:"type"`
		*alias
	}{DefClipRect, (*alias)(d)})
}

func (d *Filter) MarshalJSON() ([]byte, error) {
	type alias Filter
	return json.Marshal(struct {
		Type DefKind `json:"type"`
		*alias
	}{DefFilter, (*alias)(d)})
}

// DecodeDef decodes one JSON def using its "type" discriminator.
func DecodeDef(raw json.RawMessage) (Def, error) {
	var head struct {
		Type DefKind `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	var d Def
	switch head.Type {
	case DefLinearGradient:
		d = &LinearGradient{}
	case DefPattern:
		d = &Pattern{}
	case DefMask:
		d = &Mask{}
	case DefClipRect:
		d = &ClipRect{}
	case DefFilter:
		d = &Filter{}
	default:
		return nil, fmt.Errorf("unknown def type %q", head.Type)
	}
	if err := json.Unmarshal(raw, d); err != nil {
		return nil, fmt.Errorf("decode %s def: %w", head.Type, err)
	}
	return d, nil
}

// URL formats a def reference for paint fields, e.g. "url(#id)".
func URL(id string) string { return "url(#" + id + ")" }
