package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"qualitymap/internal/geometry"
	"qualitymap/internal/logger"
	"qualitymap/internal/models"
	"qualitymap/internal/services"
	"qualitymap/internal/views"

	"fyne.io/fyne/v2"
)

const loadTimeout = 30 * time.Second

// Application events
const (
	EventDrawingLoaded      = "drawing_loaded"
	EventAnnotationFinished = "annotation_finished"
)

// MainController connects the main view to the drawing and annotation
// services. Every method runs on the UI goroutine.
type MainController struct {
	// Services
	drawingService    *services.DrawingService
	annotationService *services.AnnotationService

	// Views
	mainView *views.MainView

	logger logger.Logger

	mu       sync.RWMutex
	lastLoad time.Time

	// Event handlers
	eventHandlers map[string][]EventHandler
	eventMu       sync.RWMutex
}

// EventHandler handles an application event.
type EventHandler func(data interface{}) error

func NewMainController(
	drawingService *services.DrawingService,
	annotationService *services.AnnotationService,
	log logger.Logger,
) *MainController {
	controller := &MainController{
		drawingService:    drawingService,
		annotationService: annotationService,
		logger:            log,
		eventHandlers:     make(map[string][]EventHandler),
	}

	controller.initializeEventHandlers()
	return controller
}

// SetMainView associates the main view with this controller
func (mc *MainController) SetMainView(view *views.MainView) {
	mc.mainView = view
	mc.setupViewEventHandlers()
	mc.refreshStatus()
}

// LoadDrawing asks the user for a DXF file and loads it.
func (mc *MainController) LoadDrawing() {
	if mc.mainView == nil {
		mc.handleError("Load failed", fmt.Errorf("main view not set"))
		return
	}
	mc.mainView.ShowOpenDrawingDialog(services.DrawingExtensions, mc.onDrawingSelected)
}

func (mc *MainController) onDrawingSelected(reader fyne.URIReadCloser, err error) {
	if err != nil {
		mc.handleError("File selection failed", err)
		return
	}
	if reader == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	data, err := mc.drawingService.Load(ctx, reader)
	if err != nil {
		mc.handleError("Drawing load failed", err)
		return
	}
	mc.showDrawing(data)
}

// OpenDrawing loads a drawing from r without the file dialog.
func (mc *MainController) OpenDrawing(ctx context.Context, name string, r io.Reader) error {
	data, err := mc.drawingService.LoadFrom(ctx, name, r)
	if err != nil {
		mc.handleError("Drawing load failed", err)
		return err
	}
	mc.showDrawing(data)
	return nil
}

// showDrawing replaces the canvas contents with a freshly loaded drawing.
func (mc *MainController) showDrawing(data *models.DrawingData) {
	mc.mu.Lock()
	mc.lastLoad = time.Now()
	mc.mu.Unlock()

	mc.annotationService.Reset()
	if mc.mainView != nil {
		mc.mainView.ClearCanvas()
		size := mc.mainView.CanvasSize()
		mc.relayout(float64(size.Width), float64(size.Height))
		mc.mainView.UpdateDrawingInfo(data.Name, data.EntityCount())
		mc.mainView.SetDrawingTitle(data.Name)
		mc.mainView.UpdateStatus(fmt.Sprintf("Loaded %s", data.Name))
	}
	mc.refreshStatus()

	mc.emitEvent(EventDrawingLoaded, data)
}

// CanvasResized refits the drawing and moves existing segments with it.
func (mc *MainController) CanvasResized(width, height float64) {
	mc.relayout(width, height)
}

func (mc *MainController) relayout(width, height float64) {
	vp, prims, err := mc.drawingService.Layout(width, height)
	switch {
	case errors.Is(err, services.ErrNoDrawing):
		return
	case errors.Is(err, geometry.ErrCanvasTooSmall):
		// The canvas has not been laid out yet; a later resize fits it.
		return
	case err != nil:
		mc.handleError("Layout failed", err)
		return
	}

	mc.annotationService.SetViewport(vp)
	if mc.mainView == nil {
		return
	}
	mc.mainView.SetPrimitives(prims)
	for _, seg := range mc.annotationService.Segments() {
		from, to := mc.annotationService.Project(seg)
		mc.mainView.MoveSegment(seg.ID, from, to)
	}
}

// StartAnnotation enters a drawing mode.
func (mc *MainController) StartAnnotation(mode models.Mode) {
	mc.annotationService.StartMode(mode)
	if mc.mainView != nil {
		mc.mainView.SetActiveMode(mode)
		mc.mainView.UpdateStatus(fmt.Sprintf("Drawing %s", mode.String()))
	}
	mc.refreshStatus()
}

// FinishAnnotation records an entry for the current mode and leaves drawing
// mode.
func (mc *MainController) FinishAnnotation() {
	entry := mc.annotationService.Finish()
	if mc.mainView != nil {
		if err := mc.mainView.AddEntry(entry.Label); err != nil {
			mc.handleError("Entry list update failed", err)
		}
		mc.mainView.SetActiveMode(models.ModeNone)
		mc.mainView.UpdateStatus(fmt.Sprintf("Added %s", entry.Label))
	}
	mc.refreshStatus()

	mc.emitEvent(EventAnnotationFinished, entry)
}

// Undo removes the most recently drawn segment.
func (mc *MainController) Undo() {
	seg, ok := mc.annotationService.Undo()
	if mc.mainView == nil {
		return
	}
	if !ok {
		mc.mainView.UpdateStatus("Nothing to undo")
		return
	}
	mc.mainView.RemoveSegment(seg.ID)
	mc.refreshStatus()
}

// Canvas input

func (mc *MainController) CanvasPressed(p geometry.Point) {
	mc.annotationService.Press(p)
}

func (mc *MainController) CanvasDragged(p geometry.Point) {
	seg, ok := mc.annotationService.Drag(p)
	if !ok || mc.mainView == nil {
		return
	}
	from, to := mc.annotationService.Project(seg)
	mc.mainView.AddSegment(seg.ID, from, to, seg.Mode)
	mc.refreshStatus()
}

func (mc *MainController) CanvasReleased() {
	mc.annotationService.Release()
}

// ApplicationState is a snapshot of the session for logging and tests.
type ApplicationState struct {
	HasDrawing  bool
	DrawingName string
	Mode        models.Mode
	Segments    int
	Entries     int
	LastLoad    time.Time
}

func (mc *MainController) GetApplicationState() ApplicationState {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	stats := mc.annotationService.Stats()
	state := ApplicationState{
		Mode:     stats.Mode,
		Segments: stats.Segments,
		Entries:  stats.Entries,
		LastLoad: mc.lastLoad,
	}
	if current := mc.drawingService.Current(); current != nil {
		state.HasDrawing = true
		state.DrawingName = current.Name
	}
	return state
}

func (mc *MainController) refreshStatus() {
	if mc.mainView != nil {
		mc.mainView.UpdateAnnotationInfo(mc.annotationService.Stats())
	}
}

// Event system methods

func (mc *MainController) initializeEventHandlers() {
	mc.addEventListener(EventDrawingLoaded, mc.onDrawingLoaded)
	mc.addEventListener(EventAnnotationFinished, mc.onAnnotationFinished)
}

func (mc *MainController) setupViewEventHandlers() {
	if mc.mainView == nil {
		return
	}

	mc.mainView.SetLoadDrawingHandler(mc.LoadDrawing)
	mc.mainView.SetModeHandler(mc.StartAnnotation)
	mc.mainView.SetUndoHandler(mc.Undo)
	mc.mainView.SetFinishHandler(mc.FinishAnnotation)
	mc.mainView.SetCanvasHandlers(mc.CanvasPressed, mc.CanvasDragged, mc.CanvasReleased)
	mc.mainView.SetResizeHandler(mc.CanvasResized)
}

// AddEventListener registers a handler for an application event.
func (mc *MainController) AddEventListener(eventType string, handler EventHandler) {
	mc.addEventListener(eventType, handler)
}

func (mc *MainController) addEventListener(eventType string, handler EventHandler) {
	mc.eventMu.Lock()
	defer mc.eventMu.Unlock()

	mc.eventHandlers[eventType] = append(mc.eventHandlers[eventType], handler)
}

// emitEvent runs the handlers in registration order on the calling goroutine.
func (mc *MainController) emitEvent(eventType string, data interface{}) {
	mc.eventMu.RLock()
	handlers := mc.eventHandlers[eventType]
	mc.eventMu.RUnlock()

	for _, handler := range handlers {
		if err := handler(data); err != nil {
			mc.logger.Error("MainController", err, map[string]interface{}{
				"event": eventType,
			})
		}
	}
}

func (mc *MainController) onDrawingLoaded(data interface{}) error {
	drawing, ok := data.(*models.DrawingData)
	if !ok {
		return fmt.Errorf("invalid data type for %s event", EventDrawingLoaded)
	}

	if len(drawing.Drawing.Skipped) > 0 {
		fields := make(map[string]interface{}, len(drawing.Drawing.Skipped)+1)
		fields["file"] = drawing.Name
		for kind, n := range drawing.Drawing.Skipped {
			fields[kind] = n
		}
		mc.logger.Warning("MainController", "entities not rendered", fields)
	}
	return nil
}

func (mc *MainController) onAnnotationFinished(data interface{}) error {
	entry, ok := data.(models.Entry)
	if !ok {
		return fmt.Errorf("invalid data type for %s event", EventAnnotationFinished)
	}

	if entry.Segments == 0 {
		mc.logger.Warning("MainController", "annotation finished without segments", map[string]interface{}{
			"entry": entry.Label,
		})
	}
	return nil
}

// handleError logs err and shows it in an error dialog.
func (mc *MainController) handleError(title string, err error) {
	mc.logger.Error("MainController", err, map[string]interface{}{
		"context": title,
	})
	if mc.mainView != nil {
		mc.mainView.UpdateStatus(title)
		mc.mainView.ShowError(fmt.Errorf("%s: %w", title, err))
	}
}

// Shutdown logs the final session state.
func (mc *MainController) Shutdown() {
	state := mc.GetApplicationState()
	mc.logger.Info("MainController", "controller shutdown", map[string]interface{}{
		"drawing":  state.DrawingName,
		"segments": state.Segments,
		"entries":  state.Entries,
	})
}
