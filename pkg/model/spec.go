package model

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Type is the tag that selects a chart type's handler set.
type Type string

// Registered chart type tags.
const (
	TypeSparkline  Type = "sparkline"
	TypeBars       Type = "bars"
	TypeStackedBar Type = "stacked-bar"
	TypeDots       Type = "dots"
	TypeWaffle     Type = "waffle"
	TypeDonut      Type = "donut"
	TypePie        Type = "pie"
	TypeRing       Type = "ring"
	TypeTreemap    Type = "treemap"
	TypeBullet     Type = "bullet"
)

// Spec is one variant of the chart spec union. Every variant embeds Common.
type Spec interface {
	Type() Type
	Base() Common
}

// Common holds the options every chart type accepts.
type Common struct {
	// Pad overrides the chart type's default padding, in pixels.
	Pad *float64 `json:"pad,omitempty"`
	// Class is a style hook copied onto every mark.
	Class string `json:"class,omitempty"`
}

// Base returns the universal options.
func (c Common) Base() Common { return c }

// SparklineSpec draws a series as a polyline.
type SparklineSpec struct {
	Common
	StrokeWidth *float64 `json:"strokeWidth,omitempty"` // default 1.5
	Area        *bool    `json:"area,omitempty"`        // default false
	ShowLast    *bool    `json:"showLast,omitempty"`    // default true
	LastRadius  *float64 `json:"lastRadius,omitempty"`  // default 2
	Color       string   `json:"color,omitempty"`       // default theme palette[0]
}

// BarsSpec draws a series as columns.
type BarsSpec struct {
	Common
	Gap      *float64 `json:"gap,omitempty"`      // default 1
	Fade     *bool    `json:"fade,omitempty"`     // default false
	Baseline *float64 `json:"baseline,omitempty"` // default 0
	Color    string   `json:"color,omitempty"`    // default theme palette[0]
}

// StackedBarSpec draws segments as one horizontal stacked bar.
type StackedBarSpec struct {
	Common
	Gap    *float64 `json:"gap,omitempty"`    // default 0
	Radius *float64 `json:"radius,omitempty"` // default 0
}

// DotsSpec draws a fixed number of dots colored by segment share.
type DotsSpec struct {
	Common
	Count         *int     `json:"count,omitempty"`         // default 12
	Radius        *float64 `json:"radius,omitempty"`        // default 6
	Gap           *float64 `json:"gap,omitempty"`           // default 4
	MinPerSegment *int     `json:"minPerSegment,omitempty"` // default 0
}

// WaffleSpec draws a rows x cols grid of cells colored by segment share.
type WaffleSpec struct {
	Common
	Rows *int     `json:"rows,omitempty"` // default 10
	Cols *int     `json:"cols,omitempty"` // default 10
	Gap  *float64 `json:"gap,omitempty"`  // default 1
}

// DonutSpec draws segments as annular wedges.
type DonutSpec struct {
	Common
	Thickness   *float64 `json:"thickness,omitempty"`   // fraction of outer radius, default 0.35
	PadAngle    *float64 `json:"padAngle,omitempty"`    // radians between wedges, default 0
	CenterLabel string   `json:"centerLabel,omitempty"` // default none
}

// PieSpec draws segments as full wedges.
type PieSpec struct {
	Common
	PadAngle *float64 `json:"padAngle,omitempty"` // default 0
}

// RingSpec draws segments as dashed strokes on one circle.
type RingSpec struct {
	Common
	StrokeWidth *float64 `json:"strokeWidth,omitempty"` // default 4
	GapSize     *float64 `json:"gapSize,omitempty"`     // pixels between dashes, default 0
	Track       *bool    `json:"track,omitempty"`       // default false
	Glow        *bool    `json:"glow,omitempty"`        // default false
}

// TreemapSpec packs segments into the drawing rectangle.
type TreemapSpec struct {
	Common
	Gap *float64 `json:"gap,omitempty"` // default 0
}

// BulletSpec draws a current value against previous and target markers.
type BulletSpec struct {
	Common
	Max     *float64 `json:"max,omitempty"`     // default derived from the record
	Hatched *bool    `json:"hatched,omitempty"` // default false
	Color   string   `json:"color,omitempty"`   // default theme palette[0]
}

// MissingSpec reports whether s is nil or a nil pointer to a variant. Calling
// Type on such a pointer panics.
func MissingSpec(s Spec) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func (SparklineSpec) Type() Type  { return TypeSparkline }
func (BarsSpec) Type() Type       { return TypeBars }
func (StackedBarSpec) Type() Type { return TypeStackedBar }
func (DotsSpec) Type() Type       { return TypeDots }
func (WaffleSpec) Type() Type     { return TypeWaffle }
func (DonutSpec) Type() Type      { return TypeDonut }
func (PieSpec) Type() Type        { return TypePie }
func (RingSpec) Type() Type       { return TypeRing }
func (TreemapSpec) Type() Type    { return TypeTreemap }
func (BulletSpec) Type() Type     { return TypeBullet }

// DecodeSpec decodes the JSON options object of a spec whose tag is already
// known. An unknown tag yields ok=false so that the caller can report it as
// a dispatch error. A nil or empty raw message decodes to the zero variant.
func DecodeSpec(tag Type, raw json.RawMessage) (spec Spec, ok bool, err error) {
	switch tag {
	case TypeSparkline:
		return decodeInto[SparklineSpec](raw)
	case TypeBars:
		return decodeInto[BarsSpec](raw)
	case TypeStackedBar:
		return decodeInto[StackedBarSpec](raw)
	case TypeDots:
		return decodeInto[DotsSpec](raw)
	case TypeWaffle:
		return decodeInto[WaffleSpec](raw)
	case TypeDonut:
		return decodeInto[DonutSpec](raw)
	case TypePie:
		return decodeInto[PieSpec](raw)
	case TypeRing:
		return decodeInto[RingSpec](raw)
	case TypeTreemap:
		return decodeInto[TreemapSpec](raw)
	case TypeBullet:
		return decodeInto[BulletSpec](raw)
	}
	return nil, false, nil
}

func decodeInto[S Spec](raw json.RawMessage) (Spec, bool, error) {
	var s S
	if len(raw) == 0 || string(raw) == "null" {
		return s, true, nil
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, true, fmt.Errorf("decode %s spec: %w", s.Type(), err)
	}
	return s, true, nil
}

// Float returns a pointer to v, for building specs in code.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for building specs in code.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for building specs in code.
func Bool(v bool) *bool { return &v }
