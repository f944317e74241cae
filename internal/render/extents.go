package render

import (
	"qualitymap/internal/dxf"
	"qualitymap/internal/geometry"
)

// Extents returns the world-space bounding box of a single entity. Text and
// points contribute only their insertion point.
func Extents(e dxf.Entity, opts Options) geometry.Bounds {
	var b geometry.Bounds
	switch ent := e.(type) {
	case *dxf.Line:
		b.Extend(ent.Start)
		b.Extend(ent.End)
	case *dxf.Circle:
		r := geometry.Pt(ent.Radius, ent.Radius)
		b.Extend(ent.Center.Sub(r))
		b.Extend(ent.Center.Add(r))
	case *dxf.Arc:
		b.ExtendAll(arcPoints(ent, opts))
	case *dxf.LWPolyline:
		b.ExtendAll(vertexPath(ent.Vertices, ent.Closed, opts))
	case *dxf.Polyline:
		b.ExtendAll(vertexPath(ent.Vertices, ent.Closed, opts))
	case *dxf.Ellipse:
		b.ExtendAll(ellipsePoints(ent, opts))
	case *dxf.Spline:
		b.ExtendAll(splinePath(ent))
	case *dxf.Text:
		b.Extend(ent.Insert)
	case *dxf.MText:
		b.Extend(ent.Insert)
	case *dxf.Point:
		b.Extend(ent.Location)
	}
	return b
}

// DrawingBounds is the union of every entity's extents.
func DrawingBounds(d *dxf.Drawing, opts Options) geometry.Bounds {
	var b geometry.Bounds
	if d == nil {
		return b
	}
	for _, e := range d.Entities {
		b = b.Union(Extents(e, opts))
	}
	return b
}
