package services

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"qualitymap/internal/config"
	"qualitymap/internal/dxf"
	"qualitymap/internal/geometry"
	"qualitymap/internal/logger"
	"qualitymap/internal/models"
	"qualitymap/internal/render"

	"fyne.io/fyne/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported drawing format, expected .dxf")
	ErrNoGeometry        = errors.New("drawing contains no renderable geometry")
	ErrNoDrawing         = errors.New("no drawing loaded")
)

// DrawingExtensions lists the file extensions accepted by the open dialog.
var DrawingExtensions = []string{".dxf"}

// DrawingService loads DXF files and fits them to the canvas.
type DrawingService struct {
	repository *models.DrawingRepository
	logger     logger.Logger
	options    render.Options
	padding    float64
	flipY      bool
}

func NewDrawingService(repo *models.DrawingRepository, log logger.Logger, cfg config.RenderConfig) *DrawingService {
	return &DrawingService{
		repository: repo,
		logger:     log,
		options: render.Options{
			ArcSegments:     cfg.ArcSegments,
			EllipseSegments: cfg.EllipseSegments,
			PointRadius:     cfg.PointRadius,
			TextSize:        cfg.TextSize,
		},
		padding: cfg.Padding,
		flipY:   cfg.FlipY,
	}
}

// Load reads a drawing from a dialog reader and makes it current.
func (ds *DrawingService) Load(ctx context.Context, reader fyne.URIReadCloser) (*models.DrawingData, error) {
	defer reader.Close()

	uri := reader.URI()
	if !isDrawingFile(uri.Extension()) {
		return nil, fmt.Errorf("%s: %w", uri.Name(), ErrUnsupportedFormat)
	}

	data, err := ds.parse(ctx, uri.Name(), reader)
	if err != nil {
		return nil, err
	}
	data.URI = uri

	ds.store(data)
	return data, nil
}

// LoadFrom reads a drawing from any reader. name supplies the extension.
func (ds *DrawingService) LoadFrom(ctx context.Context, name string, r io.Reader) (*models.DrawingData, error) {
	if !isDrawingFile(filepath.Ext(name)) {
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}

	data, err := ds.parse(ctx, name, r)
	if err != nil {
		return nil, err
	}

	ds.store(data)
	return data, nil
}

func (ds *DrawingService) parse(ctx context.Context, name string, r io.Reader) (*models.DrawingData, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	startTime := time.Now()

	raw, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("read drawing %s: %w", name, err)
	}

	drawing, err := dxf.Read(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse drawing %s: %w", name, err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	bounds := render.DrawingBounds(drawing, ds.options)
	if bounds.IsEmpty() {
		return nil, fmt.Errorf("%s: %w", name, ErrNoGeometry)
	}
	if bounds.Width() == 0 && bounds.Height() == 0 {
		return nil, fmt.Errorf("%s: %w", name, geometry.ErrDegenerateBounds)
	}

	return &models.DrawingData{
		Name:        name,
		Drawing:     drawing,
		Bounds:      bounds,
		LoadTime:    time.Now(),
		LoadElapsed: time.Since(startTime),
		FileSize:    int64(len(raw)),
	}, nil
}

func (ds *DrawingService) store(data *models.DrawingData) {
	ds.repository.SetCurrent(data)

	ds.logger.Info("DrawingService", "drawing loaded", map[string]interface{}{
		"name":       data.Name,
		"version":    data.Drawing.Version,
		"entities":   data.EntityCount(),
		"types":      data.Drawing.Counts(),
		"skipped":    data.Drawing.Skipped,
		"layers":     len(data.Drawing.Layers()),
		"bytes":      data.FileSize,
		"elapsed_ms": data.LoadElapsed.Milliseconds(),
	})
}

// Current returns the drawing on the canvas, or nil.
func (ds *DrawingService) Current() *models.DrawingData {
	return ds.repository.Current()
}

// Layout fits the current drawing to a canvas of the given size and returns
// the viewport with the primitives to draw.
func (ds *DrawingService) Layout(width, height float64) (geometry.Viewport, []render.Primitive, error) {
	current := ds.repository.Current()
	if current == nil {
		return geometry.Identity(), nil, ErrNoDrawing
	}

	vp, err := geometry.Fit(current.Bounds, width, height, ds.padding, ds.flipY)
	if err != nil {
		return geometry.Identity(), nil, fmt.Errorf("fit %s: %w", current.Name, err)
	}

	prims := render.Entities(current.Drawing, vp, ds.options)
	ds.logger.Debug("DrawingService", "drawing laid out", map[string]interface{}{
		"width":      width,
		"height":     height,
		"scale":      vp.Scale,
		"primitives": render.Summary(prims),
	})
	return vp, prims, nil
}

// Shutdown releases the current drawing.
func (ds *DrawingService) Shutdown() {
	ds.repository.Shutdown()
}

func isDrawingFile(ext string) bool {
	ext = strings.ToLower(ext)
	for _, want := range DrawingExtensions {
		if ext == want {
			return true
		}
	}
	return false
}
