package geometry

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyBounds      = errors.New("drawing has no extents")
	ErrDegenerateBounds = errors.New("drawing extents collapse to a single point")
	ErrCanvasTooSmall   = errors.New("canvas has no drawable area")
)

// Viewport maps world coordinates onto the canvas with a uniform scale and
// an offset. With FlipY the world y axis points up, as in CAD files, while
// canvas y grows downward.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
	Height  float64
	FlipY   bool
}

// Identity maps world coordinates straight onto the canvas.
func Identity() Viewport {
	return Viewport{Scale: 1}
}

// Fit centres b inside a width x height canvas, leaving padding on every
// side. The scale is the smaller of the two axis ratios so the whole drawing
// stays visible; an axis with zero extent defers to the other one.
func Fit(b Bounds, width, height, padding float64, flipY bool) (Viewport, error) {
	if b.IsEmpty() {
		return Viewport{}, ErrEmptyBounds
	}
	innerW := width - 2*padding
	innerH := height - 2*padding
	if innerW <= 0 || innerH <= 0 {
		return Viewport{}, fmt.Errorf("%w: %.0fx%.0f with padding %.0f", ErrCanvasTooSmall, width, height, padding)
	}

	dx, dy := b.Width(), b.Height()
	var scale float64
	switch {
	case dx == 0 && dy == 0:
		return Viewport{}, ErrDegenerateBounds
	case dx == 0:
		scale = innerH / dy
	case dy == 0:
		scale = innerW / dx
	default:
		scale = min(innerW/dx, innerH/dy)
	}

	return Viewport{
		Scale:   scale,
		OffsetX: (width-dx*scale)/2 - b.Min.X*scale,
		OffsetY: (height-dy*scale)/2 - b.Min.Y*scale,
		Height:  height,
		FlipY:   flipY,
	}, nil
}

// ToCanvas maps a world point to canvas coordinates.
func (v Viewport) ToCanvas(p Point) Point {
	x := p.X*v.Scale + v.OffsetX
	y := p.Y*v.Scale + v.OffsetY
	if v.FlipY {
		y = v.Height - y
	}
	return Point{X: x, Y: y}
}

// ToWorld is the inverse of ToCanvas.
func (v Viewport) ToWorld(p Point) Point {
	y := p.Y
	if v.FlipY {
		y = v.Height - y
	}
	return Point{
		X: (p.X - v.OffsetX) / v.Scale,
		Y: (y - v.OffsetY) / v.Scale,
	}
}

// ScaleLength converts a world distance to canvas units.
func (v Viewport) ScaleLength(l float64) float64 {
	return l * v.Scale
}
