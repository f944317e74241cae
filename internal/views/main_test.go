package views

import (
	"testing"

	"qualitymap/internal/geometry"
	"qualitymap/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView(t *testing.T) *MainView {
	t.Helper()
	test.NewApp()
	w := test.NewWindow(widget.NewLabel(""))
	t.Cleanup(w.Close)
	return NewMainView(w, 1.5)
}

func TestMainViewSetsContent(t *testing.T) {
	mv := newTestView(t)
	assert.Equal(t, mv.GetContainer(), mv.GetWindow().Content())
}

func TestMainViewForwardsCanvasInput(t *testing.T) {
	mv := newTestView(t)

	var points []geometry.Point
	released := false
	mv.SetCanvasHandlers(
		func(p geometry.Point) { points = append(points, p) },
		func(p geometry.Point) { points = append(points, p) },
		func() { released = true },
	)

	c := mv.Canvas()
	c.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(3, 4)},
		Button:     desktop.MouseButtonPrimary,
	})
	c.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(6, 8)},
		Dragged:    fyne.NewDelta(3, 4),
	})
	c.DragEnd()

	assert.Equal(t, []geometry.Point{geometry.Pt(3, 4), geometry.Pt(6, 8)}, points)
	assert.True(t, released)
}

func TestMainViewSegmentsAndEntries(t *testing.T) {
	mv := newTestView(t)

	mv.AddSegment(1, geometry.Pt(0, 0), geometry.Pt(1, 1), models.ModeContamination)
	mv.AddSegment(2, geometry.Pt(1, 1), geometry.Pt(2, 2), models.ModeContamination)
	assert.Equal(t, 2, mv.SegmentCount())
	assert.True(t, mv.RemoveSegment(2))

	line, ok := mv.Canvas().Segment(1)
	require.True(t, ok)
	assert.Equal(t, models.ModeContamination.Color(), line.StrokeColor)

	require.NoError(t, mv.AddEntry("Contamination 1"))
	assert.Equal(t, []string{"Contamination 1"}, mv.Entries())

	mv.ClearCanvas()
	assert.Zero(t, mv.SegmentCount())
	assert.Equal(t, []string{"Contamination 1"}, mv.Entries(), "entries outlive the canvas")
}

func TestMainViewActiveMode(t *testing.T) {
	mv := newTestView(t)

	mode := models.ModeNone
	mv.SetModeHandler(func(m models.Mode) { mode = m })

	mv.SetActiveMode(models.ModeScratch)
	assert.True(t, mv.Toolbar().FinishVisible())

	mv.SetActiveMode(models.ModeNone)
	assert.False(t, mv.Toolbar().FinishVisible())
	assert.Equal(t, models.ModeNone, mode, "setting the mode from code does not call back")
}

func TestMainViewResizeHandler(t *testing.T) {
	mv := newTestView(t)

	var width, height float64
	mv.SetResizeHandler(func(w, h float64) { width, height = w, h })
	mv.Canvas().Resize(fyne.NewSize(640, 480))

	assert.Equal(t, 640.0, width)
	assert.Equal(t, 480.0, height)
}
