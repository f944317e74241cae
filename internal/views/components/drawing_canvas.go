package components

import (
	"image/color"
	"strings"

	"qualitymap/internal/geometry"
	"qualitymap/internal/render"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	CanvasMinWidth  = 320
	CanvasMinHeight = 240

	textLineSpacing = 1.2
)

var drawingColor = color.NRGBA{A: 0xff}

// DrawingCanvas shows the fitted drawing with the annotation segments on
// top and turns primary-button press and drag into stroke input.
type DrawingCanvas struct {
	widget.BaseWidget

	background  *canvas.Rectangle
	drawing     *fyne.Container
	annotations *fyne.Container
	segments    map[int]*canvas.Line
	strokeWidth float32

	pressed   bool
	crosshair bool
	lastSize  fyne.Size

	onPress   func(fyne.Position)
	onDrag    func(fyne.Position)
	onRelease func()
	onResize  func(fyne.Size)
}

var (
	_ fyne.Draggable     = (*DrawingCanvas)(nil)
	_ desktop.Mouseable  = (*DrawingCanvas)(nil)
	_ desktop.Cursorable = (*DrawingCanvas)(nil)
)

// NewDrawingCanvas creates an empty white canvas.
func NewDrawingCanvas(strokeWidth float32) *DrawingCanvas {
	dc := &DrawingCanvas{
		background:  canvas.NewRectangle(color.White),
		drawing:     container.NewWithoutLayout(),
		annotations: container.NewWithoutLayout(),
		segments:    make(map[int]*canvas.Line),
		strokeWidth: strokeWidth,
	}
	dc.ExtendBaseWidget(dc)
	return dc
}

// Event handler setters

func (dc *DrawingCanvas) SetPressHandler(handler func(fyne.Position)) {
	dc.onPress = handler
}

func (dc *DrawingCanvas) SetDragHandler(handler func(fyne.Position)) {
	dc.onDrag = handler
}

func (dc *DrawingCanvas) SetReleaseHandler(handler func()) {
	dc.onRelease = handler
}

// SetResizeHandler is called whenever the canvas changes size.
func (dc *DrawingCanvas) SetResizeHandler(handler func(fyne.Size)) {
	dc.onResize = handler
}

// Resize notifies the resize handler so the drawing can be refitted.
func (dc *DrawingCanvas) Resize(size fyne.Size) {
	dc.BaseWidget.Resize(size)
	if size == dc.lastSize {
		return
	}
	dc.lastSize = size
	if dc.onResize != nil {
		dc.onResize(size)
	}
}

// Input

func (dc *DrawingCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	dc.pressed = true
	if dc.onPress != nil {
		dc.onPress(ev.Position)
	}
}

func (dc *DrawingCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	dc.release()
}

// Dragged also serves touch input, where no MouseDown arrives: the first
// drag event starts the stroke where the finger went down.
func (dc *DrawingCanvas) Dragged(ev *fyne.DragEvent) {
	if !dc.pressed {
		dc.pressed = true
		if dc.onPress != nil {
			dc.onPress(fyne.NewPos(ev.Position.X-ev.Dragged.DX, ev.Position.Y-ev.Dragged.DY))
		}
	}
	if dc.onDrag != nil {
		dc.onDrag(ev.Position)
	}
}

func (dc *DrawingCanvas) DragEnd() {
	dc.release()
}

func (dc *DrawingCanvas) release() {
	if !dc.pressed {
		return
	}
	dc.pressed = false
	if dc.onRelease != nil {
		dc.onRelease()
	}
}

// SetCrosshair switches the pointer to a crosshair while a mode is active.
func (dc *DrawingCanvas) SetCrosshair(on bool) {
	dc.crosshair = on
}

func (dc *DrawingCanvas) Cursor() desktop.Cursor {
	if dc.crosshair {
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}

// Drawing content

// SetPrimitives replaces the rendered drawing.
func (dc *DrawingCanvas) SetPrimitives(prims []render.Primitive) {
	objects := make([]fyne.CanvasObject, 0, len(prims))
	for _, p := range prims {
		objects = append(objects, primitiveObjects(p)...)
	}
	dc.drawing.Objects = objects
	dc.drawing.Refresh()
}

func (dc *DrawingCanvas) ClearDrawing() {
	dc.SetPrimitives(nil)
}

// DrawingObjectCount is the number of canvas objects used by the drawing.
func (dc *DrawingCanvas) DrawingObjectCount() int {
	return len(dc.drawing.Objects)
}

func primitiveObjects(p render.Primitive) []fyne.CanvasObject {
	switch p.Kind {
	case render.KindLine:
		line := canvas.NewLine(drawingColor)
		line.StrokeWidth = 1
		line.Position1 = toPos(p.From)
		line.Position2 = toPos(p.To)
		return []fyne.CanvasObject{line}
	case render.KindCircle, render.KindDot:
		circle := canvas.NewCircle(color.Transparent)
		if p.Kind == render.KindDot {
			circle.FillColor = drawingColor
		}
		circle.StrokeColor = drawingColor
		circle.StrokeWidth = 1
		r := float32(p.Radius)
		center := toPos(p.Center)
		circle.Position1 = fyne.NewPos(center.X-r, center.Y-r)
		circle.Position2 = fyne.NewPos(center.X+r, center.Y+r)
		return []fyne.CanvasObject{circle}
	case render.KindText:
		return textObjects(p)
	}
	return nil
}

// textObjects stacks one canvas.Text per line below the anchor.
func textObjects(p render.Primitive) []fyne.CanvasObject {
	lines := strings.Split(p.Text, "\n")
	objects := make([]fyne.CanvasObject, 0, len(lines))
	anchor := toPos(p.From)
	size := float32(p.TextSize)
	for i, line := range lines {
		text := canvas.NewText(line, drawingColor)
		text.TextSize = size
		text.Move(fyne.NewPos(anchor.X, anchor.Y+float32(i)*size*textLineSpacing))
		text.Resize(text.MinSize())
		objects = append(objects, text)
	}
	return objects
}

// Annotation segments

// AddSegment draws one annotation segment and keeps its handle for undo.
func (dc *DrawingCanvas) AddSegment(id int, from, to geometry.Point, col color.Color) {
	line := canvas.NewLine(col)
	line.StrokeWidth = dc.strokeWidth
	line.Position1 = toPos(from)
	line.Position2 = toPos(to)

	if old, ok := dc.segments[id]; ok {
		dc.annotations.Remove(old)
	}
	dc.segments[id] = line
	dc.annotations.Add(line)
}

// MoveSegment repositions an existing segment after the viewport changed.
func (dc *DrawingCanvas) MoveSegment(id int, from, to geometry.Point) bool {
	line, ok := dc.segments[id]
	if !ok {
		return false
	}
	line.Position1 = toPos(from)
	line.Position2 = toPos(to)
	line.Refresh()
	return true
}

// RemoveSegment deletes the segment drawn under id.
func (dc *DrawingCanvas) RemoveSegment(id int) bool {
	line, ok := dc.segments[id]
	if !ok {
		return false
	}
	delete(dc.segments, id)
	dc.annotations.Remove(line)
	return true
}

func (dc *DrawingCanvas) ClearSegments() {
	dc.segments = make(map[int]*canvas.Line)
	dc.annotations.RemoveAll()
}

func (dc *DrawingCanvas) SegmentCount() int {
	return len(dc.segments)
}

// Segment returns the canvas line drawn for id.
func (dc *DrawingCanvas) Segment(id int) (*canvas.Line, bool) {
	line, ok := dc.segments[id]
	return line, ok
}

func (dc *DrawingCanvas) MinSize() fyne.Size {
	return fyne.NewSize(CanvasMinWidth, CanvasMinHeight)
}

func (dc *DrawingCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &drawingCanvasRenderer{
		canvas:  dc,
		objects: []fyne.CanvasObject{dc.background, dc.drawing, dc.annotations},
	}
}

type drawingCanvasRenderer struct {
	canvas  *DrawingCanvas
	objects []fyne.CanvasObject
}

func (r *drawingCanvasRenderer) Layout(size fyne.Size) {
	for _, o := range r.objects {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(size)
	}
}

func (r *drawingCanvasRenderer) MinSize() fyne.Size {
	return r.canvas.MinSize()
}

func (r *drawingCanvasRenderer) Refresh() {
	for _, o := range r.objects {
		o.Refresh()
	}
}

func (r *drawingCanvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *drawingCanvasRenderer) Destroy() {}

func toPos(p geometry.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

// ToPoint converts a canvas position to geometry coordinates.
func ToPoint(pos fyne.Position) geometry.Point {
	return geometry.Pt(float64(pos.X), float64(pos.Y))
}
