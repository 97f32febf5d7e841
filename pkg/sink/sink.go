package sink

import (
	"strings"

	"github.com/matzehuels/microviz/pkg/errors"
	"github.com/matzehuels/microviz/pkg/model"
)

// Format is an output encoding.
type Format string

// Output formats.
const (
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
	FormatPNG  Format = "png"
)

// Formats lists every output format in a stable order.
var Formats = []Format{FormatSVG, FormatJSON, FormatPNG}

// ParseFormat parses a single format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatJSON, FormatPNG:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q (want svg, json or png)", s)
}

// ParseFormats parses a comma-separated list, dropping duplicates.
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := map[Format]bool{}
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no output format given")
	}
	return out, nil
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	}
	return "application/json"
}

// Options configures Render. Fields irrelevant to a format are ignored.
type Options struct {
	// Scale multiplies the PNG pixel size. Zero means 1.
	Scale float64
	// Title overrides the SVG <title>, which defaults to the a11y label.
	Title string
	// Class is added to the root <svg> element.
	Class string
}

// Render encodes m in format f.
func Render(m model.RenderModel, f Format, opts Options) ([]byte, error) {
	switch f {
	case FormatSVG:
		var svgOpts []SVGOption
		if opts.Title != "" {
			svgOpts = append(svgOpts, WithTitle(opts.Title))
		}
		if opts.Class != "" {
			svgOpts = append(svgOpts, WithClass(opts.Class))
		}
		return RenderSVG(m, svgOpts...), nil
	case FormatJSON:
		return RenderJSON(m)
	case FormatPNG:
		return RenderPNG(m, opts.Scale)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", f)
}
