package components

import (
	"image/color"
	"testing"

	"qualitymap/internal/geometry"
	"qualitymap/internal/models"
	"qualitymap/internal/render"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func primary(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(x, y, dx, dy float32) *fyne.DragEvent {
	return &fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Dragged:    fyne.NewDelta(dx, dy),
	}
}

func TestDrawingCanvasMouseInput(t *testing.T) {
	test.NewApp()
	dc := NewDrawingCanvas(2)

	var pressed []fyne.Position
	var dragged []fyne.Position
	released := 0
	dc.SetPressHandler(func(p fyne.Position) { pressed = append(pressed, p) })
	dc.SetDragHandler(func(p fyne.Position) { dragged = append(dragged, p) })
	dc.SetReleaseHandler(func() { released++ })

	dc.MouseDown(primary(10, 10))
	dc.Dragged(drag(12, 11, 2, 1))
	dc.Dragged(drag(15, 13, 3, 2))
	dc.DragEnd()
	dc.MouseUp(primary(15, 13))

	require.Len(t, pressed, 1)
	assert.Equal(t, fyne.NewPos(10, 10), pressed[0])
	assert.Equal(t, []fyne.Position{fyne.NewPos(12, 11), fyne.NewPos(15, 13)}, dragged)
	assert.Equal(t, 1, released, "release fires once per stroke")
}

func TestDrawingCanvasIgnoresSecondaryButton(t *testing.T) {
	test.NewApp()
	dc := NewDrawingCanvas(2)

	pressed := 0
	dc.SetPressHandler(func(fyne.Position) { pressed++ })
	dc.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(1, 1)},
		Button:     desktop.MouseButtonSecondary,
	})
	assert.Zero(t, pressed)
}

func TestDrawingCanvasDragWithoutPressStartsAtOrigin(t *testing.T) {
	test.NewApp()
	dc := NewDrawingCanvas(2)

	var pressed []fyne.Position
	dc.SetPressHandler(func(p fyne.Position) { pressed = append(pressed, p) })
	dc.Dragged(drag(20, 30, 5, -5))

	require.Len(t, pressed, 1)
	assert.Equal(t, fyne.NewPos(15, 35), pressed[0])
}

func TestDrawingCanvasPrimitives(t *testing.T) {
	test.NewApp()
	dc := NewDrawingCanvas(2)

	dc.SetPrimitives([]render.Primitive{
		{Kind: render.KindLine, From: geometry.Pt(0, 0), To: geometry.Pt(10, 10)},
		{Kind: render.KindCircle, Center: geometry.Pt(5, 5), Radius: 3},
		{Kind: render.KindDot, Center: geometry.Pt(1, 1), Radius: 2},
		{Kind: render.KindText, From: geometry.Pt(2, 2), Text: "one\ntwo", TextSize: 12},
	})
	assert.Equal(t, 5, dc.DrawingObjectCount(), "multi-line text uses one object per line")

	circle, ok := dc.drawing.Objects[1].(*canvas.Circle)
	require.True(t, ok)
	assert.Equal(t, fyne.NewPos(2, 2), circle.Position1)
	assert.Equal(t, fyne.NewPos(8, 8), circle.Position2)

	second, ok := dc.drawing.Objects[4].(*canvas.Text)
	require.True(t, ok)
	assert.Equal(t, "two", second.Text)
	assert.Greater(t, second.Position().Y, float32(2))

	dc.ClearDrawing()
	assert.Zero(t, dc.DrawingObjectCount())
}

func TestDrawingCanvasSegments(t *testing.T) {
	test.NewApp()
	dc := NewDrawingCanvas(3)
	red := color.NRGBA{R: 0xff, A: 0xff}

	dc.AddSegment(1, geometry.Pt(0, 0), geometry.Pt(5, 5), red)
	dc.AddSegment(2, geometry.Pt(5, 5), geometry.Pt(9, 9), red)
	assert.Equal(t, 2, dc.SegmentCount())

	line, ok := dc.Segment(2)
	require.True(t, ok)
	assert.Equal(t, float32(3), line.StrokeWidth)
	assert.Equal(t, red, line.StrokeColor)

	require.True(t, dc.MoveSegment(1, geometry.Pt(1, 1), geometry.Pt(2, 2)))
	line, _ = dc.Segment(1)
	assert.Equal(t, fyne.NewPos(1, 1), line.Position1)

	assert.True(t, dc.RemoveSegment(2))
	assert.False(t, dc.RemoveSegment(2))
	assert.False(t, dc.MoveSegment(2, geometry.Pt(0, 0), geometry.Pt(1, 1)))
	assert.Len(t, dc.annotations.Objects, 1)

	dc.ClearSegments()
	assert.Zero(t, dc.SegmentCount())
	assert.Empty(t, dc.annotations.Objects)
}

func TestDrawingCanvasResizeHandler(t *testing.T) {
	test.NewApp()
	dc := NewDrawingCanvas(2)

	var sizes []fyne.Size
	dc.SetResizeHandler(func(s fyne.Size) { sizes = append(sizes, s) })

	dc.Resize(fyne.NewSize(400, 300))
	dc.Resize(fyne.NewSize(400, 300))
	dc.Resize(fyne.NewSize(500, 300))

	assert.Equal(t, []fyne.Size{fyne.NewSize(400, 300), fyne.NewSize(500, 300)}, sizes)
}

func TestDrawingCanvasCursor(t *testing.T) {
	test.NewApp()
	dc := NewDrawingCanvas(2)

	assert.Equal(t, desktop.DefaultCursor, dc.Cursor())
	dc.SetCrosshair(true)
	assert.Equal(t, desktop.CrosshairCursor, dc.Cursor())
}

func TestToolbarHandlers(t *testing.T) {
	test.NewApp()
	tb := NewToolbar()

	loads, undos, finishes := 0, 0, 0
	var modes []models.Mode
	tb.SetLoadHandler(func() { loads++ })
	tb.SetUndoHandler(func() { undos++ })
	tb.SetFinishHandler(func() { finishes++ })
	tb.SetModeHandler(func(m models.Mode) { modes = append(modes, m) })

	test.Tap(tb.loadButton)
	test.Tap(tb.modeButtons[models.ModeContamination])
	test.Tap(tb.modeButtons[models.ModeScratch])
	test.Tap(tb.undoButton)
	test.Tap(tb.finishButton)

	assert.Equal(t, 1, loads)
	assert.Equal(t, 1, undos)
	assert.Equal(t, 1, finishes)
	assert.Equal(t, []models.Mode{models.ModeContamination, models.ModeScratch}, modes)
}

func TestToolbarActiveMode(t *testing.T) {
	test.NewApp()
	tb := NewToolbar()

	assert.False(t, tb.FinishVisible(), "Finished is hidden until a mode is chosen")

	tb.SetActiveMode(models.ModeOther)
	assert.True(t, tb.FinishVisible())
	assert.Equal(t, models.ModeOther, tb.ActiveMode())
	assert.Equal(t, widget.HighImportance, tb.modeButtons[models.ModeOther].Importance)
	assert.Equal(t, widget.MediumImportance, tb.modeButtons[models.ModeScratch].Importance)

	tb.SetActiveMode(models.ModeNone)
	assert.False(t, tb.FinishVisible())
}

func TestEntryList(t *testing.T) {
	test.NewApp()
	el := NewEntryList()

	require.NoError(t, el.Append("Scratch 1"))
	require.NoError(t, el.Append("Other 2"))
	assert.Equal(t, 2, el.Count())
	assert.Equal(t, []string{"Scratch 1", "Other 2"}, el.Items())
}

func TestStatusBar(t *testing.T) {
	test.NewApp()
	sb := NewStatusBar()

	assert.Equal(t, "Ready", sb.GetStatus())
	assert.Equal(t, "Mode: none | Segments: 0 | Entries: 0", sb.GetAnnotationInfo())

	sb.SetStatus("Drawing loaded")
	sb.SetDrawingInfo("part.dxf", 12)
	sb.SetAnnotationInfo(models.AnnotationStats{Mode: models.ModeScratch, Segments: 4, Entries: 1})

	assert.Equal(t, "Drawing loaded", sb.GetStatus())
	assert.Equal(t, "Drawing: part.dxf, 12 entities", sb.GetDrawingInfo())
	assert.Equal(t, "Mode: scratch | Segments: 4 | Entries: 1", sb.GetAnnotationInfo())
}
