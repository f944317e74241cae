package services

import (
	"sync"

	"qualitymap/internal/geometry"
	"qualitymap/internal/logger"
	"qualitymap/internal/models"
)

// AnnotationService drives the annotation session from canvas input. Pointer
// positions arrive in canvas units and are stored in world units so strokes
// follow the drawing when the canvas is resized.
type AnnotationService struct {
	repository *models.AnnotationRepository
	logger     logger.Logger

	mu       sync.RWMutex
	viewport geometry.Viewport
}

func NewAnnotationService(repo *models.AnnotationRepository, log logger.Logger) *AnnotationService {
	return &AnnotationService{
		repository: repo,
		logger:     log,
		viewport:   geometry.Identity(),
	}
}

// SetViewport changes the world/canvas mapping used for new input and for
// Project.
func (as *AnnotationService) SetViewport(vp geometry.Viewport) {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.viewport = vp
}

func (as *AnnotationService) Viewport() geometry.Viewport {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return as.viewport
}

// StartMode enters a drawing mode.
func (as *AnnotationService) StartMode(mode models.Mode) {
	as.repository.SetMode(mode)
	as.logger.Info("AnnotationService", "annotation mode started", map[string]interface{}{
		"mode": mode.String(),
	})
}

func (as *AnnotationService) Mode() models.Mode {
	return as.repository.Mode()
}

// Press begins a stroke at a canvas position.
func (as *AnnotationService) Press(p geometry.Point) bool {
	return as.repository.BeginStroke(as.Viewport().ToWorld(p))
}

// Drag extends the active stroke to a canvas position.
func (as *AnnotationService) Drag(p geometry.Point) (models.Segment, bool) {
	seg, ok := as.repository.ExtendStroke(as.Viewport().ToWorld(p))
	if ok {
		as.logger.Debug("AnnotationService", "segment drawn", map[string]interface{}{
			"segment_id": seg.ID,
			"mode":       seg.Mode.String(),
		})
	}
	return seg, ok
}

// Release ends the active stroke.
func (as *AnnotationService) Release() {
	as.repository.EndStroke()
}

// Undo removes the most recent segment.
func (as *AnnotationService) Undo() (models.Segment, bool) {
	seg, ok := as.repository.Undo()
	if ok {
		as.logger.Debug("AnnotationService", "segment undone", map[string]interface{}{
			"segment_id": seg.ID,
		})
	}
	return seg, ok
}

// Finish closes the current annotation and returns its entry.
func (as *AnnotationService) Finish() models.Entry {
	entry := as.repository.Finish()
	as.logger.Info("AnnotationService", "annotation finished", map[string]interface{}{
		"entry":    entry.Label,
		"entry_id": entry.ID,
		"segments": entry.Segments,
	})
	return entry
}

// Reset removes every segment, e.g. when a new drawing replaces the canvas.
func (as *AnnotationService) Reset() {
	n := as.repository.ClearSegments()
	if n > 0 {
		as.logger.Info("AnnotationService", "segments cleared", map[string]interface{}{
			"segments": n,
		})
	}
}

// Project maps a stored segment to canvas coordinates.
func (as *AnnotationService) Project(seg models.Segment) (geometry.Point, geometry.Point) {
	vp := as.Viewport()
	return vp.ToCanvas(seg.From), vp.ToCanvas(seg.To)
}

func (as *AnnotationService) Segments() []models.Segment {
	return as.repository.Segments()
}

func (as *AnnotationService) Entries() []models.Entry {
	return as.repository.Entries()
}

func (as *AnnotationService) Stats() models.AnnotationStats {
	return as.repository.Stats()
}

// Shutdown logs the session summary.
func (as *AnnotationService) Shutdown() {
	stats := as.repository.Stats()
	as.logger.Info("AnnotationService", "annotation session closed", map[string]interface{}{
		"entries":  stats.Entries,
		"segments": stats.Segments,
	})
}
