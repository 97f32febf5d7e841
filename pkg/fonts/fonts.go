// Package fonts provides the typeface used for text marks.
//
// The font is Go Regular, compiled into the binary through
// golang.org/x/image/font/gofont, so rasterized labels look the same on every
// host. The SVG sink names the same family so that browsers with the font
// installed match the PNG output.
package fonts

import (
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family written on SVG text marks.
const FontFamily = "Go, 'Helvetica Neue', Arial, sans-serif"

// RegularTTF returns the Go Regular TrueType data.
func RegularTTF() []byte {
	return goregular.TTF
}

// Parsed once on first access and shared by every render.
var (
	source     *text.FontSource
	sourceErr  error
	sourceOnce sync.Once
)

// Source returns the shared font source.
func Source() (*text.FontSource, error) {
	sourceOnce.Do(func() {
		source, sourceErr = text.NewFontSource(goregular.TTF)
	})
	return source, sourceErr
}

// Face returns a face at size pixels.
func Face(size float64) (text.Face, error) {
	src, err := Source()
	if err != nil {
		return nil, err
	}
	return src.Face(size), nil
}
