package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/microviz/pkg/errors"
)

// Format is an input document encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

var extensions = map[string]Format{
	".json": FormatJSON,
	".toml": FormatTOML,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
}

// FormatFromPath picks the format from the file extension, case-insensitively.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported input extension %q (want .json, .toml, .yaml or .yml)", ext)
}

// ParseFormat accepts a format name as given on the command line or in a
// Content-Type suffix.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q", name)
}
