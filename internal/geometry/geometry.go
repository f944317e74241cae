// Package geometry holds the 2D math shared by the drawing reader, the
// renderer and the annotation layer: points, bounding boxes, the world to
// canvas viewport and parametric sampling of arcs and ellipses.
package geometry

import "math"

// Point is a 2D position in either world or canvas units.
type Point struct {
	X float64
	Y float64
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Perp rotates p by 90 degrees counter-clockwise.
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Bounds is an axis-aligned bounding box. The zero value is empty.
type Bounds struct {
	Min   Point
	Max   Point
	valid bool
}

// BoundsOf returns the smallest box holding every point.
func BoundsOf(points ...Point) Bounds {
	var b Bounds
	b.ExtendAll(points)
	return b
}

func (b *Bounds) Extend(p Point) {
	if !b.valid {
		b.Min, b.Max, b.valid = p, p, true
		return
	}
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
}

func (b *Bounds) ExtendAll(points []Point) {
	for _, p := range points {
		b.Extend(p)
	}
}

// Union returns a box covering both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if !o.valid {
		return b
	}
	if !b.valid {
		return o
	}
	b.Extend(o.Min)
	b.Extend(o.Max)
	return b
}

func (b Bounds) IsEmpty() bool {
	return !b.valid
}

func (b Bounds) Width() float64 {
	if !b.valid {
		return 0
	}
	return b.Max.X - b.Min.X
}

func (b Bounds) Height() float64 {
	if !b.valid {
		return 0
	}
	return b.Max.Y - b.Min.Y
}

func (b Bounds) Center() Point {
	return Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

func (b Bounds) Contains(p Point) bool {
	return b.valid && p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}
