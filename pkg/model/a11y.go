package model

import (
	"encoding/json"
	"fmt"
)

// Trend compares the first and last finite value of a series.
type Trend string

// Trend values.
const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// A11yTree is the accessibility description of one chart.
type A11yTree struct {
	Label   string     `json:"label"`
	Role    string     `json:"role"`
	Items   []A11yItem `json:"items,omitempty"`
	Summary Summary    `json:"summary,omitempty"`
}

// A11yItem describes one datum.
type A11yItem struct {
	Label string `json:"label"`
}

// Summary is one of the two closed summary shapes.
type Summary interface {
	SummaryKind() string
}

// SeriesSummary summarizes a numeric series. Only Count is set for an empty series.
type SeriesSummary struct {
	Count int      `json:"count"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Last  *float64 `json:"last,omitempty"`
	Trend Trend    `json:"trend,omitempty"`
}

// SegmentSummary summarizes a segment list. Largest is nil when Count is 0.
type SegmentSummary struct {
	Count   int      `json:"count"`
	Largest *Largest `json:"largest,omitempty"`
}

// Largest is the biggest segment and its formatted label.
type Largest struct {
	Name  string  `json:"name,omitempty"`
	Pct   float64 `json:"pct"`
	Label string  `json:"label"`
}

func (*SeriesSummary) SummaryKind() string  { return "series" }
func (*SegmentSummary) SummaryKind() string { return "segments" }

func (s *SeriesSummary) MarshalJSON() ([]byte, error) {
	type alias SeriesSummary
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{"series", (*alias)(s)})
}

func (s *SegmentSummary) MarshalJSON() ([]byte, error) {
	type alias SegmentSummary
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{"segments", (*alias)(s)})
}

// UnmarshalJSON decodes the summary union by its "kind" field.
func (t *A11yTree) UnmarshalJSON(data []byte) error {
	var raw struct {
		Label   string          `json:"label"`
		Role    string          `json:"role"`
		Items   []A11yItem      `json:"items"`
		Summary json.RawMessage `json:"summary"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Label, t.Role, t.Items, t.Summary = raw.Label, raw.Role, raw.Items, nil
	if len(raw.Summary) == 0 || string(raw.Summary) == "null" {
		return nil
	}

	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw.Summary, &head); err != nil {
		return err
	}
	switch head.Kind {
	case "series":
		s := &SeriesSummary{}
		if err := json.Unmarshal(raw.Summary, s); err != nil {
			return err
		}
		t.Summary = s
	case "segments":
		s := &SegmentSummary{}
		if err := json.Unmarshal(raw.Summary, s); err != nil {
			return err
		}
		t.Summary = s
	default:
		return fmt.Errorf("unknown summary kind %q", head.Kind)
	}
	return nil
}
