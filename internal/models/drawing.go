package models

import (
	"sync"
	"time"

	"qualitymap/internal/dxf"
	"qualitymap/internal/geometry"

	"fyne.io/fyne/v2"
)

// DrawingData is a loaded drawing together with its load metadata.
type DrawingData struct {
	Name        string
	URI         fyne.URI
	Drawing     *dxf.Drawing
	Bounds      geometry.Bounds
	LoadTime    time.Time
	LoadElapsed time.Duration
	FileSize    int64
}

// EntityCount is the number of model-space entities that will be rendered.
func (d *DrawingData) EntityCount() int {
	if d == nil || d.Drawing == nil {
		return 0
	}
	return len(d.Drawing.Entities)
}

// DrawingRepository keeps the drawing currently shown on the canvas.
type DrawingRepository struct {
	mu      sync.RWMutex
	current *DrawingData
	loads   int
}

func NewDrawingRepository() *DrawingRepository {
	return &DrawingRepository{}
}

// SetCurrent replaces the shown drawing.
func (r *DrawingRepository) SetCurrent(d *DrawingData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = d
	r.loads++
}

func (r *DrawingRepository) Current() *DrawingData {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

func (r *DrawingRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = nil
}

// DrawingStats contains statistics about the repository.
type DrawingStats struct {
	HasDrawing bool
	Name       string
	Entities   int
	Loads      int
}

func (r *DrawingRepository) Stats() DrawingStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := DrawingStats{Loads: r.loads}
	if r.current != nil {
		stats.HasDrawing = true
		stats.Name = r.current.Name
		stats.Entities = r.current.EntityCount()
	}
	return stats
}

// Shutdown releases the held drawing.
func (r *DrawingRepository) Shutdown() {
	r.Clear()
}
