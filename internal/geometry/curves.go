package geometry

import "math"

// ArcPoints samples a circular arc running counter-clockwise from startDeg to
// endDeg (degrees, DXF convention). It returns segments+1 points. An end
// angle at or below the start angle is taken to wrap through 360.
func ArcPoints(center Point, radius, startDeg, endDeg float64, segments int) []Point {
	if segments < 1 {
		segments = 1
	}
	start := normalizeDegrees(startDeg)
	end := normalizeDegrees(endDeg)
	if end <= start {
		end += 360
	}

	step := (end - start) / float64(segments)
	points := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		angle := (start + float64(i)*step) * math.Pi / 180
		points = append(points, Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		})
	}
	return points
}

// EllipsePoints samples an ellipse given its centre, the major axis endpoint
// relative to the centre, the minor/major ratio and the parameter range in
// radians. It returns segments+1 points.
func EllipsePoints(center, majorAxis Point, ratio, startParam, endParam float64, segments int) []Point {
	if segments < 1 {
		segments = 1
	}
	if endParam <= startParam {
		endParam += 2 * math.Pi
	}
	minorAxis := majorAxis.Perp().Scale(ratio)

	step := (endParam - startParam) / float64(segments)
	points := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := startParam + float64(i)*step
		points = append(points, center.
			Add(majorAxis.Scale(math.Cos(t))).
			Add(minorAxis.Scale(math.Sin(t))))
	}
	return points
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// BulgePoints samples the arc between two polyline vertices joined with the
// given bulge (tan of a quarter of the included angle, positive meaning
// counter-clockwise). A zero bulge yields the straight segment.
func BulgePoints(from, to Point, bulge float64, segments int) []Point {
	chord := to.Sub(from)
	d := chord.Len()
	if bulge == 0 || d == 0 {
		return []Point{from, to}
	}
	if segments < 1 {
		segments = 1
	}

	theta := 4 * math.Atan(bulge)
	mid := from.Add(chord.Scale(0.5))
	// signed distance from the chord midpoint to the centre
	h := (d / 2) / math.Tan(theta/2)
	center := mid.Add(chord.Perp().Scale(h / d))

	radius := from.Sub(center).Len()
	start := math.Atan2(from.Y-center.Y, from.X-center.X)

	points := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := start + theta*float64(i)/float64(segments)
		points = append(points, Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	points[segments] = to
	return points
}
