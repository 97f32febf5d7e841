package model

// Size is the requested outer size of one chart instance.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Layout is the usable drawing rectangle for one call: the outer size with
// a uniform padding inset.
type Layout struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Pad    float64 `json:"pad"`
}

// X0 returns the left edge of the drawing rectangle.
func (l Layout) X0() float64 { return l.Pad }

// Y0 returns the top edge of the drawing rectangle.
func (l Layout) Y0() float64 { return l.Pad }

// InnerWidth returns the usable width, never negative.
func (l Layout) InnerWidth() float64 { return max(0, l.Width-2*l.Pad) }

// InnerHeight returns the usable height, never negative.
func (l Layout) InnerHeight() float64 { return max(0, l.Height-2*l.Pad) }

// CenterX returns the horizontal center of the canvas.
func (l Layout) CenterX() float64 { return l.Width / 2 }

// CenterY returns the vertical center of the canvas.
func (l Layout) CenterY() float64 { return l.Height / 2 }

// Box is an axis-aligned bounding box in canvas coordinates.
type Box struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal span of the box.
func (b Box) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical span of the box.
func (b Box) Height() float64 { return b.Y1 - b.Y0 }

// Area returns the area of the box.
func (b Box) Area() float64 { return b.Width() * b.Height() }

// Within reports whether b lies inside [0,w]x[0,h] allowing tol pixels of slack.
func (b Box) Within(w, h, tol float64) bool {
	return b.X0 >= -tol && b.Y0 >= -tol && b.X1 <= w+tol && b.Y1 <= h+tol
}
