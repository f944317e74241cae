package dxf

import (
	"math"

	"qualitymap/internal/geometry"
)

// builders cover the entity types the CAD library does not map.
var builders = map[string]func(*record) (Entity, error){
	"ELLIPSE": buildEllipse,
	"SPLINE":  buildSpline,
	"MTEXT":   buildMText,
}

// each visits the groups in file order, stopping at the first error.
func (r *record) each(fn func(g group) error) error {
	for _, g := range r.groups {
		if err := fn(g); err != nil {
			return err
		}
	}
	return nil
}

// validate checks that numeric groups parse, so malformed values are
// reported with their line before the record reaches the library.
func (r *record) validate() error {
	return r.each(func(g group) error {
		switch {
		case g.code >= 10 && g.code <= 59:
			var f float64
			return g.float(&f)
		case g.code >= 60 && g.code <= 99:
			var i int
			return g.int(&i)
		}
		return nil
	})
}

func (r *record) closed() (bool, error) {
	var closed bool
	err := r.each(func(g group) error {
		if g.code != 70 {
			return nil
		}
		var flags int
		if err := g.int(&flags); err != nil {
			return err
		}
		closed = flags&1 != 0
		return nil
	})
	return closed, err
}

// lwBulges returns one bulge per LWPOLYLINE vertex.
func (r *record) lwBulges() ([]float64, error) {
	var bulges []float64
	err := r.each(func(g group) error {
		switch g.code {
		case 10:
			// each x coordinate opens a new vertex
			bulges = append(bulges, 0)
		case 42:
			if len(bulges) > 0 {
				return g.float(&bulges[len(bulges)-1])
			}
		}
		return nil
	})
	return bulges, err
}

func buildVertex(r *record) (Vertex, error) {
	var v Vertex
	err := r.each(func(g group) error {
		switch g.code {
		case 10:
			return g.float(&v.X)
		case 20:
			return g.float(&v.Y)
		case 42:
			return g.float(&v.Bulge)
		}
		return nil
	})
	return v, err
}

func buildEllipse(r *record) (Entity, error) {
	base, err := r.base()
	if err != nil {
		return nil, err
	}
	e := &Ellipse{Base: base, Ratio: 1, EndParam: 2 * math.Pi}
	err = r.each(func(g group) error {
		switch g.code {
		case 10:
			return g.float(&e.Center.X)
		case 20:
			return g.float(&e.Center.Y)
		case 11:
			return g.float(&e.MajorAxis.X)
		case 21:
			return g.float(&e.MajorAxis.Y)
		case 40:
			return g.float(&e.Ratio)
		case 41:
			return g.float(&e.StartParam)
		case 42:
			return g.float(&e.EndParam)
		}
		return nil
	})
	return e, err
}

func buildSpline(r *record) (Entity, error) {
	base, err := r.base()
	if err != nil {
		return nil, err
	}
	s := &Spline{Base: base}
	if s.Closed, err = r.closed(); err != nil {
		return nil, err
	}
	err = r.each(func(g group) error {
		switch g.code {
		case 71:
			return g.int(&s.Degree)
		case 10:
			s.ControlPoints = append(s.ControlPoints, geometry.Point{})
			return g.float(&s.ControlPoints[len(s.ControlPoints)-1].X)
		case 20:
			if len(s.ControlPoints) > 0 {
				return g.float(&s.ControlPoints[len(s.ControlPoints)-1].Y)
			}
		case 11:
			s.FitPoints = append(s.FitPoints, geometry.Point{})
			return g.float(&s.FitPoints[len(s.FitPoints)-1].X)
		case 21:
			if len(s.FitPoints) > 0 {
				return g.float(&s.FitPoints[len(s.FitPoints)-1].Y)
			}
		}
		return nil
	})
	return s, err
}

func buildMText(r *record) (Entity, error) {
	base, err := r.base()
	if err != nil {
		return nil, err
	}
	t := &MText{Base: base}
	var chunks, last string
	err = r.each(func(g group) error {
		switch g.code {
		case 10:
			return g.float(&t.Insert.X)
		case 20:
			return g.float(&t.Insert.Y)
		case 40:
			return g.float(&t.Height)
		case 50:
			return g.float(&t.Rotation)
		case 3:
			chunks += g.value
		case 1:
			last = g.value
		}
		return nil
	})
	t.Value = CleanMText(chunks + last)
	return t, err
}
