package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestBoundsZeroValueIsEmpty(t *testing.T) {
	var b Bounds
	assert.True(t, b.IsEmpty())
	assert.Zero(t, b.Width())
	assert.Zero(t, b.Height())
	assert.False(t, b.Contains(Pt(0, 0)))
}

func TestBoundsExtend(t *testing.T) {
	b := BoundsOf(Pt(1, 2), Pt(-3, 5), Pt(4, -1))
	require.False(t, b.IsEmpty())
	assert.Equal(t, Pt(-3, -1), b.Min)
	assert.Equal(t, Pt(4, 5), b.Max)
	assert.Equal(t, 7.0, b.Width())
	assert.Equal(t, 6.0, b.Height())
	assert.Equal(t, Pt(0.5, 2), b.Center())
	assert.True(t, b.Contains(Pt(0, 0)))
}

func TestBoundsUnion(t *testing.T) {
	a := BoundsOf(Pt(0, 0), Pt(1, 1))
	b := BoundsOf(Pt(5, -2))
	var empty Bounds

	u := a.Union(b)
	assert.Equal(t, Pt(0, -2), u.Min)
	assert.Equal(t, Pt(5, 1), u.Max)

	assert.Equal(t, a, a.Union(empty))
	assert.Equal(t, a, empty.Union(a))
}

func TestArcPointsQuarter(t *testing.T) {
	pts := ArcPoints(Pt(1, 1), 2, 0, 90, 4)
	require.Len(t, pts, 5)
	assert.InDelta(t, 3, pts[0].X, eps)
	assert.InDelta(t, 1, pts[0].Y, eps)
	assert.InDelta(t, 1, pts[4].X, eps)
	assert.InDelta(t, 3, pts[4].Y, eps)
	for _, p := range pts {
		assert.InDelta(t, 2, p.Sub(Pt(1, 1)).Len(), eps)
	}
}

func TestArcPointsWrapsThroughZero(t *testing.T) {
	pts := ArcPoints(Pt(0, 0), 1, 350, 10, 2)
	require.Len(t, pts, 3)
	// midpoint sits on the positive x axis, not at 180 degrees
	assert.InDelta(t, 1, pts[1].X, eps)
	assert.InDelta(t, 0, pts[1].Y, eps)
}

func TestArcPointsFullCircle(t *testing.T) {
	pts := ArcPoints(Pt(0, 0), 1, 0, 360, 100)
	require.Len(t, pts, 101)
	assert.InDelta(t, pts[0].X, pts[100].X, eps)
	assert.InDelta(t, pts[0].Y, pts[100].Y, eps)
	assert.InDelta(t, -1, pts[50].X, eps)
}

func TestArcPointsClampsSegments(t *testing.T) {
	assert.Len(t, ArcPoints(Pt(0, 0), 1, 0, 90, 0), 2)
}

func TestEllipsePointsAxisAligned(t *testing.T) {
	pts := EllipsePoints(Pt(0, 0), Pt(4, 0), 0.5, 0, 2*math.Pi, 4)
	require.Len(t, pts, 5)
	assert.InDelta(t, 4, pts[0].X, eps)
	assert.InDelta(t, 0, pts[0].Y, eps)
	assert.InDelta(t, 0, pts[1].X, eps)
	assert.InDelta(t, 2, pts[1].Y, eps)
	assert.InDelta(t, -4, pts[2].X, eps)
	assert.InDelta(t, -2, pts[3].Y, eps)
}

func TestEllipsePointsRotated(t *testing.T) {
	// major axis along +y: minor axis points along -x
	pts := EllipsePoints(Pt(10, 10), Pt(0, 3), 1.0/3, 0, math.Pi/2, 1)
	require.Len(t, pts, 2)
	assert.InDelta(t, 10, pts[0].X, eps)
	assert.InDelta(t, 13, pts[0].Y, eps)
	assert.InDelta(t, 9, pts[1].X, eps)
	assert.InDelta(t, 10, pts[1].Y, eps)
}

func TestEllipsePointsWrap(t *testing.T) {
	pts := EllipsePoints(Pt(0, 0), Pt(1, 0), 1, 3*math.Pi/2, math.Pi/2, 2)
	require.Len(t, pts, 3)
	assert.InDelta(t, 1, pts[1].X, eps)
	assert.InDelta(t, 0, pts[1].Y, eps)
}

func TestBulgePointsSemicircle(t *testing.T) {
	// bulge 1 is a half circle, counter-clockwise from (0,0) to (2,0) dips below the chord
	pts := BulgePoints(Pt(0, 0), Pt(2, 0), 1, 2)
	require.Len(t, pts, 3)
	assert.Equal(t, Pt(0, 0), pts[0])
	assert.Equal(t, Pt(2, 0), pts[2])
	assert.InDelta(t, 1, pts[1].X, eps)
	assert.InDelta(t, -1, pts[1].Y, eps)
}

func TestBulgePointsClockwise(t *testing.T) {
	pts := BulgePoints(Pt(0, 0), Pt(2, 0), -1, 2)
	assert.InDelta(t, 1, pts[1].Y, eps)
}

func TestBulgePointsStraight(t *testing.T) {
	assert.Equal(t, []Point{Pt(0, 0), Pt(3, 4)}, BulgePoints(Pt(0, 0), Pt(3, 4), 0, 8))
}
