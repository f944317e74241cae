package dxf

import (
	"bytes"
	"fmt"
	"strconv"

	cad "github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"qualitymap/internal/geometry"
)

// libraryKinds are parsed by github.com/yofu/dxf. Layer, handle, colour,
// paper space and bulges are taken from the records themselves.
var libraryKinds = map[string]bool{
	"LINE":       true,
	"CIRCLE":     true,
	"ARC":        true,
	"LWPOLYLINE": true,
	"POLYLINE":   true,
	"POINT":      true,
	"TEXT":       true,
}

// pending is a record handed to the library, waiting for its entity.
type pending struct {
	kind     string
	rec      *record
	vertices []*record
	entity   Entity
}

// libraryDoc collects the geometry groups of library-bound records into a
// minimal ENTITIES-only document.
type libraryDoc struct {
	buf     bytes.Buffer
	pending []*pending
}

func (ld *libraryDoc) add(p *pending) {
	ld.pending = append(ld.pending, p)
	ld.write(p.rec)
}

func (ld *libraryDoc) write(rec *record) {
	ld.pair(0, rec.kind)
	for _, g := range rec.groups {
		if geometryCode(g.code) {
			ld.pair(g.code, g.value)
		}
	}
}

func (ld *libraryDoc) pair(code int, value string) {
	ld.buf.WriteString(strconv.Itoa(code))
	ld.buf.WriteByte('\n')
	ld.buf.WriteString(value)
	ld.buf.WriteByte('\n')
}

// geometryCode keeps text, coordinates, sizes, angles and flags. Layer and
// handle groups stay out so the library never needs a TABLES section.
func geometryCode(code int) bool {
	switch {
	case code == 1:
		return true
	case code >= 10 && code <= 59:
		return true
	case code == 66:
		return true
	case code >= 70 && code <= 79:
		return true
	case code >= 90 && code <= 99:
		return true
	}
	return false
}

// resolve parses the collected document and fills in every pending entity.
func (ld *libraryDoc) resolve() error {
	if len(ld.pending) == 0 {
		return nil
	}

	doc := "0\nSECTION\n2\nENTITIES\n" + ld.buf.String() + "0\nENDSEC\n0\nEOF\n"
	drawing, err := cad.FromStringData(doc)
	if err != nil {
		return fmt.Errorf("dxf: entities: %w", err)
	}

	next := 0
	for _, e := range drawing.Entities() {
		kind, ok := libraryKind(e)
		if !ok {
			continue
		}
		if next >= len(ld.pending) {
			return fmt.Errorf("%w: %d records", ErrEntityMismatch, len(ld.pending))
		}
		p := ld.pending[next]
		if p.kind != kind {
			return fmt.Errorf("%w: got %s for %s", ErrEntityMismatch, kind, p.kind)
		}
		if p.entity, err = convert(e, p); err != nil {
			return fmt.Errorf("%s: %w", p.kind, err)
		}
		next++
	}
	if next != len(ld.pending) {
		return fmt.Errorf("%w: %d of %d records", ErrEntityMismatch, next, len(ld.pending))
	}
	return nil
}

func libraryKind(e entity.Entity) (string, bool) {
	switch e.(type) {
	case *entity.Line:
		return "LINE", true
	case *entity.Arc:
		return "ARC", true
	case *entity.Circle:
		return "CIRCLE", true
	case *entity.LwPolyline:
		return "LWPOLYLINE", true
	case *entity.Polyline:
		return "POLYLINE", true
	case *entity.Point:
		return "POINT", true
	case *entity.Text:
		return "TEXT", true
	}
	return "", false
}

func convert(e entity.Entity, p *pending) (Entity, error) {
	base, err := p.rec.base()
	if err != nil {
		return nil, err
	}

	switch v := e.(type) {
	case *entity.Line:
		return &Line{Base: base, Start: point(v.Start), End: point(v.End)}, nil
	case *entity.Arc:
		a := &Arc{Base: base, Center: point(v.Center), Radius: v.Radius}
		if len(v.Angle) == 2 {
			a.StartAngle, a.EndAngle = v.Angle[0], v.Angle[1]
		}
		return a, nil
	case *entity.Circle:
		return &Circle{Base: base, Center: point(v.Center), Radius: v.Radius}, nil
	case *entity.LwPolyline:
		return lwPolyline(base, v, p.rec)
	case *entity.Polyline:
		return polyline(base, v, p)
	case *entity.Point:
		return &Point{Base: base, Location: point(v.Coord)}, nil
	case *entity.Text:
		return &Text{Base: base, Insert: point(v.Coord1), Height: v.Height, Rotation: v.Rotation, Value: v.Value}, nil
	}
	return nil, fmt.Errorf("unsupported entity %T", e)
}

func lwPolyline(base Base, v *entity.LwPolyline, rec *record) (Entity, error) {
	bulges, err := rec.lwBulges()
	if err != nil {
		return nil, err
	}
	p := &LWPolyline{Base: base, Closed: v.Closed}
	for i, c := range v.Vertices {
		vert := Vertex{Point: point(c)}
		if i < len(bulges) {
			vert.Bulge = bulges[i]
		}
		p.Vertices = append(p.Vertices, vert)
	}
	return p, nil
}

// polyline takes coordinates from the library and bulges from the VERTEX
// records. VERTEX records the library did not attach are used whole.
func polyline(base Base, v *entity.Polyline, pend *pending) (Entity, error) {
	closed, err := pend.rec.closed()
	if err != nil {
		return nil, err
	}
	p := &Polyline{Base: base, Closed: closed}
	for i, rec := range pend.vertices {
		vert, err := buildVertex(rec)
		if err != nil {
			return nil, fmt.Errorf("VERTEX: %w", err)
		}
		if len(v.Vertices) == len(pend.vertices) {
			vert.Point = point(v.Vertices[i].Coord)
		}
		p.Vertices = append(p.Vertices, vert)
	}
	return p, nil
}

func point(c []float64) geometry.Point {
	var p geometry.Point
	if len(c) > 0 {
		p.X = c[0]
	}
	if len(c) > 1 {
		p.Y = c[1]
	}
	return p
}
