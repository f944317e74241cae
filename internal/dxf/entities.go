package dxf

import "qualitymap/internal/geometry"

// Entity is one model-space object read from the ENTITIES section.
type Entity interface {
	// Type returns the DXF entity name, e.g. "LINE".
	Type() string
	Layer() string
}

// Base carries the attributes shared by every entity.
type Base struct {
	LayerName string
	Handle    string
	Color     int

	paperSpace bool
}

func (b Base) Layer() string { return b.LayerName }

type Line struct {
	Base
	Start geometry.Point
	End   geometry.Point
}

func (*Line) Type() string { return "LINE" }

type Circle struct {
	Base
	Center geometry.Point
	Radius float64
}

func (*Circle) Type() string { return "CIRCLE" }

// Arc angles are in degrees, counter-clockwise from StartAngle to EndAngle.
type Arc struct {
	Base
	Center     geometry.Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

func (*Arc) Type() string { return "ARC" }

// Vertex is a polyline vertex. A non-zero Bulge turns the segment to the
// next vertex into an arc: bulge = tan(included angle / 4).
type Vertex struct {
	geometry.Point
	Bulge float64
}

type LWPolyline struct {
	Base
	Vertices []Vertex
	Closed   bool
}

func (*LWPolyline) Type() string { return "LWPOLYLINE" }

// Polyline is assembled from a POLYLINE header, its VERTEX records and the
// closing SEQEND.
type Polyline struct {
	Base
	Vertices []Vertex
	Closed   bool
}

func (*Polyline) Type() string { return "POLYLINE" }

// Ellipse parameters are in radians. MajorAxis is relative to Center.
type Ellipse struct {
	Base
	Center     geometry.Point
	MajorAxis  geometry.Point
	Ratio      float64
	StartParam float64
	EndParam   float64
}

func (*Ellipse) Type() string { return "ELLIPSE" }

type Spline struct {
	Base
	Degree        int
	Closed        bool
	ControlPoints []geometry.Point
	FitPoints     []geometry.Point
}

func (*Spline) Type() string { return "SPLINE" }

type Text struct {
	Base
	Insert   geometry.Point
	Height   float64
	Rotation float64
	Value    string
}

func (*Text) Type() string { return "TEXT" }

// MText holds multiline text with inline formatting codes already removed.
type MText struct {
	Base
	Insert   geometry.Point
	Height   float64
	Rotation float64
	Value    string
}

func (*MText) Type() string { return "MTEXT" }

type Point struct {
	Base
	Location geometry.Point
}

func (*Point) Type() string { return "POINT" }
