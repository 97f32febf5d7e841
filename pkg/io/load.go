package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/microviz/pkg/errors"
	"github.com/matzehuels/microviz/pkg/model"
)

// maxDocumentSize bounds a single input document.
const maxDocumentSize = 8 << 20

// Parse decodes a document in the given format. TOML and YAML are decoded
// into a generic tree first and re-encoded as JSON, so every format goes
// through the same document decoder.
func Parse(data []byte, f Format) (*Document, error) {
	switch f {
	case FormatJSON:
		return decodeJSON(data)
	case FormatTOML:
		var tree map[string]any
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
		}
		return fromTree(tree)
	case FormatYAML:
		var tree map[string]any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
		return fromTree(tree)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q", f)
}

func fromTree(tree map[string]any) (*Document, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "convert document")
	}
	return decodeJSON(data)
}

// ReadDocument reads and parses a document from r. It does not close r.
func ReadDocument(r io.Reader, f Format) (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read document")
	}
	if len(data) > maxDocumentSize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document larger than %d bytes", maxDocumentSize)
	}
	return Parse(data, f)
}

// Read reads a document from r and converts it to an engine input.
func Read(r io.Reader, f Format) (model.Input, error) {
	doc, err := ReadDocument(r, f)
	if err != nil {
		return model.Input{}, err
	}
	return doc.Input()
}

// LoadDocument opens path and parses it in the format its extension names.
func LoadDocument(path string) (*Document, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer file.Close()
	return ReadDocument(file, f)
}

// Load reads the document at path and converts it to an engine input.
func Load(path string) (model.Input, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return model.Input{}, err
	}
	return doc.Input()
}
