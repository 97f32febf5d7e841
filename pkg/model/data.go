package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// RawData is the caller's data payload. Its shape depends on the chart type;
// a mismatched shape is tolerated and normalizes to empty.
type RawData interface {
	rawData()
}

// Series is an ordered numeric sequence. Non-finite values are allowed here
// and removed during normalization.
type Series []float64

// Segment is one slice of a percentage distribution.
type Segment struct {
	Name  string  `json:"name,omitempty"`
	Color string  `json:"color"`
	Pct   float64 `json:"pct"`
}

// Segments is a percentage distribution. Entries may be malformed.
type Segments []Segment

// Record is a small fixed set of named values.
type Record struct {
	Current  *float64 `json:"current,omitempty"`
	Previous *float64 `json:"previous,omitempty"`
	Target   *float64 `json:"target,omitempty"`
	Max      *float64 `json:"max,omitempty"`
}

func (Series) rawData()   {}
func (Segments) rawData() {}
func (Record) rawData()   {}

// DecodeRawData infers the data shape from JSON: an array of numbers is a
// Series (null entries become NaN), an array of objects is Segments and an
// object is a Record. null or empty input yields nil.
func DecodeRawData(raw json.RawMessage) (RawData, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	switch raw[0] {
	case '{':
		var r Record
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		return r, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode data array: %w", err)
		}
		if len(items) == 0 {
			return Segments{}, nil
		}
		if first := bytes.TrimSpace(items[0]); len(first) > 0 && first[0] == '{' {
			var segs Segments
			if err := json.Unmarshal(raw, &segs); err != nil {
				return nil, fmt.Errorf("decode segments: %w", err)
			}
			return segs, nil
		}
		var vals []*float64
		if err := json.Unmarshal(raw, &vals); err != nil {
			return nil, fmt.Errorf("decode series: %w", err)
		}
		s := make(Series, len(vals))
		for i, v := range vals {
			if v == nil {
				s[i] = math.NaN()
				continue
			}
			s[i] = *v
		}
		return s, nil
	}
	return nil, fmt.Errorf("unsupported data shape starting with %q", raw[0])
}
