package views

import (
	"qualitymap/internal/geometry"
	"qualitymap/internal/models"
	"qualitymap/internal/render"
	"qualitymap/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

const (
	WindowTitle      = "DXF Editor"
	entryPanelOffset = 0.8
)

// MainView lays out the window: toolbar on the right, drawing canvas in the
// centre, entry list below it and the status bar at the bottom.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	drawingCanvas *components.DrawingCanvas
	entryList     *components.EntryList
	statusBar     *components.StatusBar
	split         *container.Split

	// Event handlers - connected to controller
	loadDrawingHandler func()
	modeHandler        func(models.Mode)
	undoHandler        func()
	finishHandler      func()
	pressHandler       func(geometry.Point)
	dragHandler        func(geometry.Point)
	releaseHandler     func()
	resizeHandler      func(width, height float64)
}

func NewMainView(window fyne.Window, strokeWidth float32) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents(strokeWidth)
	view.buildLayout()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) initializeComponents(strokeWidth float32) {
	mv.toolbar = components.NewToolbar()
	mv.drawingCanvas = components.NewDrawingCanvas(strokeWidth)
	mv.entryList = components.NewEntryList()
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	mv.split = container.NewVSplit(mv.drawingCanvas, mv.entryList.GetWidget())
	mv.split.SetOffset(entryPanelOffset)

	mv.mainContainer = container.NewBorder(
		nil,
		mv.statusBar.GetContainer(),
		nil,
		mv.toolbar.GetContainer(),
		mv.split,
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) setupEventHandlers() {
	mv.toolbar.SetLoadHandler(func() {
		if mv.loadDrawingHandler != nil {
			mv.loadDrawingHandler()
		}
	})

	mv.toolbar.SetModeHandler(func(mode models.Mode) {
		if mv.modeHandler != nil {
			mv.modeHandler(mode)
		}
	})

	mv.toolbar.SetUndoHandler(func() {
		if mv.undoHandler != nil {
			mv.undoHandler()
		}
	})

	mv.toolbar.SetFinishHandler(func() {
		if mv.finishHandler != nil {
			mv.finishHandler()
		}
	})

	mv.drawingCanvas.SetPressHandler(func(pos fyne.Position) {
		if mv.pressHandler != nil {
			mv.pressHandler(components.ToPoint(pos))
		}
	})

	mv.drawingCanvas.SetDragHandler(func(pos fyne.Position) {
		if mv.dragHandler != nil {
			mv.dragHandler(components.ToPoint(pos))
		}
	})

	mv.drawingCanvas.SetReleaseHandler(func() {
		if mv.releaseHandler != nil {
			mv.releaseHandler()
		}
	})

	mv.drawingCanvas.SetResizeHandler(func(size fyne.Size) {
		if mv.resizeHandler != nil {
			mv.resizeHandler(float64(size.Width), float64(size.Height))
		}
	})
}

// Event handler setters - called by controller

func (mv *MainView) SetLoadDrawingHandler(handler func()) {
	mv.loadDrawingHandler = handler
}

func (mv *MainView) SetModeHandler(handler func(models.Mode)) {
	mv.modeHandler = handler
}

func (mv *MainView) SetUndoHandler(handler func()) {
	mv.undoHandler = handler
}

func (mv *MainView) SetFinishHandler(handler func()) {
	mv.finishHandler = handler
}

// SetCanvasHandlers connects pointer input on the drawing canvas. Positions
// are in canvas units.
func (mv *MainView) SetCanvasHandlers(press, drag func(geometry.Point), release func()) {
	mv.pressHandler = press
	mv.dragHandler = drag
	mv.releaseHandler = release
}

func (mv *MainView) SetResizeHandler(handler func(width, height float64)) {
	mv.resizeHandler = handler
}

// UI update methods - called by controller on the UI goroutine

func (mv *MainView) SetPrimitives(prims []render.Primitive) {
	mv.drawingCanvas.SetPrimitives(prims)
}

// ClearCanvas removes both the drawing and every annotation segment.
func (mv *MainView) ClearCanvas() {
	mv.drawingCanvas.ClearDrawing()
	mv.drawingCanvas.ClearSegments()
}

func (mv *MainView) AddSegment(id int, from, to geometry.Point, mode models.Mode) {
	mv.drawingCanvas.AddSegment(id, from, to, mode.Color())
}

func (mv *MainView) MoveSegment(id int, from, to geometry.Point) bool {
	return mv.drawingCanvas.MoveSegment(id, from, to)
}

func (mv *MainView) RemoveSegment(id int) bool {
	return mv.drawingCanvas.RemoveSegment(id)
}

func (mv *MainView) SegmentCount() int {
	return mv.drawingCanvas.SegmentCount()
}

// SetActiveMode updates the toolbar and the canvas cursor.
func (mv *MainView) SetActiveMode(mode models.Mode) {
	mv.toolbar.SetActiveMode(mode)
	mv.drawingCanvas.SetCrosshair(mode != models.ModeNone)
}

func (mv *MainView) AddEntry(label string) error {
	return mv.entryList.Append(label)
}

func (mv *MainView) Entries() []string {
	return mv.entryList.Items()
}

func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

func (mv *MainView) UpdateDrawingInfo(name string, entities int) {
	mv.statusBar.SetDrawingInfo(name, entities)
}

func (mv *MainView) UpdateAnnotationInfo(stats models.AnnotationStats) {
	mv.statusBar.SetAnnotationInfo(stats)
}

// CanvasSize is the current size of the drawing canvas.
func (mv *MainView) CanvasSize() fyne.Size {
	return mv.drawingCanvas.Size()
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(err error) {
	dialog.ShowError(err, mv.window)
}

func (mv *MainView) ShowConfirm(title, message string, callback func(bool)) {
	dialog.ShowConfirm(title, message, callback, mv.window)
}

// ShowOpenDrawingDialog shows a file dialog restricted to the given
// extensions.
func (mv *MainView) ShowOpenDrawingDialog(extensions []string, callback func(fyne.URIReadCloser, error)) {
	fileDialog := dialog.NewFileOpen(callback, mv.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(extensions))
	fileDialog.Show()
}

func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}

func (mv *MainView) GetContainer() *fyne.Container {
	return mv.mainContainer
}

func (mv *MainView) Toolbar() *components.Toolbar {
	return mv.toolbar
}

func (mv *MainView) Canvas() *components.DrawingCanvas {
	return mv.drawingCanvas
}

// SetDrawingTitle names the loaded drawing in the window title.
func (mv *MainView) SetDrawingTitle(name string) {
	mv.window.SetTitle(WindowTitle + " - " + name)
}
