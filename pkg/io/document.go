package io

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/microviz/pkg/errors"
	"github.com/matzehuels/microviz/pkg/model"
)

// Document is the on-disk and over-the-wire form of a compute call.
type Document struct {
	Type     model.Type      `json:"type"`
	Spec     json.RawMessage `json:"spec,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
	Size     model.Size      `json:"size"`
	State    *model.State    `json:"state,omitempty"`
	Theme    *model.Theme    `json:"theme,omitempty"`
	IDPrefix string          `json:"idPrefix,omitempty"`
}

// Input validates the type tag and decodes the spec options and data.
// Spec options that do not match the tag's variant are an INVALID_INPUT
// error; the values themselves are checked later by the engine.
func (d *Document) Input() (model.Input, error) {
	if err := errors.ValidateTypeTag(string(d.Type)); err != nil {
		return model.Input{}, err
	}
	spec, ok, err := model.DecodeSpec(d.Type, d.Spec)
	if !ok {
		return model.Input{}, errors.New(errors.ErrCodeUnknownChartType, "unknown chart type %q", d.Type)
	}
	if err != nil {
		return model.Input{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "spec")
	}

	data, err := model.DecodeRawData(d.Data)
	if err != nil {
		return model.Input{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "data")
	}

	return model.Input{
		Data:     data,
		Size:     d.Size,
		Spec:     spec,
		State:    d.State,
		Theme:    d.Theme,
		IDPrefix: d.IDPrefix,
	}, nil
}

// decodeJSON rejects unknown top-level fields so that typos such as "szie"
// do not silently fall back to defaults.
func decodeJSON(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode document")
	}
	return &doc, nil
}
