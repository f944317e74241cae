// Package render turns parsed drawing entities into canvas-space primitives
// that the drawing canvas widget can materialise as fyne objects.
package render

import (
	"math"

	"qualitymap/internal/dxf"
	"qualitymap/internal/geometry"
)

type Kind int

const (
	KindLine Kind = iota
	KindCircle
	KindText
	KindDot
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindText:
		return "text"
	case KindDot:
		return "dot"
	default:
		return "unknown"
	}
}

// Primitive is one drawable item in canvas coordinates. Lines use From/To,
// circles and dots use Center/Radius, text uses From as its top-left anchor.
type Primitive struct {
	Kind     Kind
	From     geometry.Point
	To       geometry.Point
	Center   geometry.Point
	Radius   float64
	Text     string
	TextSize float64
	Layer    string
}

// Options controls curve sampling and fixed-size decorations.
type Options struct {
	ArcSegments     int
	EllipseSegments int
	PointRadius     float64
	TextSize        float64
}

func DefaultOptions() Options {
	return Options{
		ArcSegments:     100,
		EllipseSegments: 100,
		PointRadius:     2,
		TextSize:        12,
	}
}

// Entities converts every supported entity to primitives through vp.
func Entities(d *dxf.Drawing, vp geometry.Viewport, opts Options) []Primitive {
	if d == nil {
		return nil
	}
	var out []Primitive
	for _, e := range d.Entities {
		out = appendEntity(out, e, vp, opts)
	}
	return out
}

func appendEntity(out []Primitive, e dxf.Entity, vp geometry.Viewport, opts Options) []Primitive {
	layer := e.Layer()
	switch ent := e.(type) {
	case *dxf.Line:
		return appendPolyline(out, []geometry.Point{ent.Start, ent.End}, vp, layer)
	case *dxf.Circle:
		return append(out, Primitive{
			Kind:   KindCircle,
			Center: vp.ToCanvas(ent.Center),
			Radius: vp.ScaleLength(ent.Radius),
			Layer:  layer,
		})
	case *dxf.Arc:
		return appendPolyline(out, arcPoints(ent, opts), vp, layer)
	case *dxf.LWPolyline:
		return appendPolyline(out, vertexPath(ent.Vertices, ent.Closed, opts), vp, layer)
	case *dxf.Polyline:
		return appendPolyline(out, vertexPath(ent.Vertices, ent.Closed, opts), vp, layer)
	case *dxf.Ellipse:
		return appendPolyline(out, ellipsePoints(ent, opts), vp, layer)
	case *dxf.Spline:
		return appendPolyline(out, splinePath(ent), vp, layer)
	case *dxf.Text:
		return appendText(out, ent.Insert, ent.Value, vp, opts, layer)
	case *dxf.MText:
		return appendText(out, ent.Insert, ent.Value, vp, opts, layer)
	case *dxf.Point:
		return append(out, Primitive{
			Kind:   KindDot,
			Center: vp.ToCanvas(ent.Location),
			Radius: opts.PointRadius,
			Layer:  layer,
		})
	}
	return out
}

func appendPolyline(out []Primitive, pts []geometry.Point, vp geometry.Viewport, layer string) []Primitive {
	for i := 0; i+1 < len(pts); i++ {
		out = append(out, Primitive{
			Kind:  KindLine,
			From:  vp.ToCanvas(pts[i]),
			To:    vp.ToCanvas(pts[i+1]),
			Layer: layer,
		})
	}
	return out
}

func appendText(out []Primitive, at geometry.Point, text string, vp geometry.Viewport, opts Options, layer string) []Primitive {
	if text == "" {
		return out
	}
	return append(out, Primitive{
		Kind:     KindText,
		From:     vp.ToCanvas(at),
		Text:     text,
		TextSize: opts.TextSize,
		Layer:    layer,
	})
}

func arcPoints(a *dxf.Arc, opts Options) []geometry.Point {
	return geometry.ArcPoints(a.Center, a.Radius, a.StartAngle, a.EndAngle, opts.ArcSegments)
}

func ellipsePoints(e *dxf.Ellipse, opts Options) []geometry.Point {
	return geometry.EllipsePoints(e.Center, e.MajorAxis, e.Ratio, e.StartParam, e.EndParam, opts.EllipseSegments)
}

// vertexPath expands bulged polyline segments into sampled arcs.
func vertexPath(vs []dxf.Vertex, closed bool, opts Options) []geometry.Point {
	if len(vs) == 0 {
		return nil
	}
	n := len(vs) - 1
	if closed && len(vs) > 1 {
		n = len(vs)
	}

	path := []geometry.Point{vs[0].Point}
	for i := 0; i < n; i++ {
		from, to := vs[i], vs[(i+1)%len(vs)]
		if from.Bulge == 0 {
			path = append(path, to.Point)
			continue
		}
		sweep := 4 * math.Abs(math.Atan(from.Bulge))
		segs := int(math.Ceil(float64(opts.ArcSegments) * sweep / (2 * math.Pi)))
		arc := geometry.BulgePoints(from.Point, to.Point, from.Bulge, max(segs, 2))
		path = append(path, arc[1:]...)
	}
	return path
}

// splinePath draws through the fit points when present, otherwise along the
// control polygon.
func splinePath(s *dxf.Spline) []geometry.Point {
	pts := s.ControlPoints
	if len(s.FitPoints) >= 2 {
		pts = s.FitPoints
	}
	if s.Closed && len(pts) > 2 {
		closed := make([]geometry.Point, 0, len(pts)+1)
		closed = append(closed, pts...)
		return append(closed, pts[0])
	}
	return pts
}

// Summary counts primitives by kind.
func Summary(prims []Primitive) map[string]int {
	counts := make(map[string]int)
	for _, p := range prims {
		counts[p.Kind.String()]++
	}
	return counts
}
