package controllers

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"qualitymap/internal/config"
	"qualitymap/internal/geometry"
	"qualitymap/internal/logger"
	"qualitymap/internal/models"
	"qualitymap/internal/services"
	"qualitymap/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
)

const samplePath = "../dxf/testdata/sample.dxf"

type MainControllerSuite struct {
	suite.Suite
	window     fyne.Window
	view       *views.MainView
	drawings   *services.DrawingService
	annotation *services.AnnotationService
	controller *MainController
}

func TestMainControllerSuite(t *testing.T) {
	suite.Run(t, new(MainControllerSuite))
}

func (s *MainControllerSuite) SetupTest() {
	test.NewApp()
	cfg := config.Default()
	log := logger.NewNop()

	s.window = test.NewWindow(widget.NewLabel(""))
	s.view = views.NewMainView(s.window, cfg.Annotation.StrokeWidth)
	s.view.Canvas().Resize(fyne.NewSize(400, 300))

	s.drawings = services.NewDrawingService(models.NewDrawingRepository(), log, cfg.Render)
	s.annotation = services.NewAnnotationService(models.NewAnnotationRepository(), log)
	s.controller = NewMainController(s.drawings, s.annotation, log)
	s.controller.SetMainView(s.view)
}

func (s *MainControllerSuite) TearDownTest() {
	s.window.Close()
}

func (s *MainControllerSuite) openSample() {
	f, err := os.Open(samplePath)
	s.Require().NoError(err)
	defer f.Close()
	s.Require().NoError(s.controller.OpenDrawing(context.Background(), "sample.dxf", f))
}

func (s *MainControllerSuite) stroke(points ...geometry.Point) {
	s.controller.CanvasPressed(points[0])
	for _, p := range points[1:] {
		s.controller.CanvasDragged(p)
	}
	s.controller.CanvasReleased()
}

func (s *MainControllerSuite) TestOpenDrawingRendersPrimitives() {
	s.openSample()

	state := s.controller.GetApplicationState()
	s.True(state.HasDrawing)
	s.Equal("sample.dxf", state.DrawingName)
	s.False(state.LastLoad.IsZero())
	s.Positive(s.view.Canvas().DrawingObjectCount())
	s.NotEqual(geometry.Identity(), s.annotation.Viewport(), "loading fits a viewport")
	s.Equal("DXF Editor - sample.dxf", s.window.Title())
}

func (s *MainControllerSuite) TestStrokeProducesOneSegmentPerDrag() {
	s.openSample()
	s.controller.StartAnnotation(models.ModeScratch)
	s.True(s.view.Toolbar().FinishVisible())

	s.stroke(geometry.Pt(10, 10), geometry.Pt(20, 12), geometry.Pt(30, 18), geometry.Pt(35, 30))

	s.Equal(3, s.view.SegmentCount())
	s.Len(s.annotation.Segments(), 3)
	s.Equal(3, s.controller.GetApplicationState().Segments)
}

func (s *MainControllerSuite) TestNoSegmentsWithoutMode() {
	s.openSample()
	s.stroke(geometry.Pt(10, 10), geometry.Pt(20, 20), geometry.Pt(30, 30))

	s.Zero(s.view.SegmentCount())
	s.Empty(s.annotation.Segments())
}

func (s *MainControllerSuite) TestUndoRemovesExactlyOneSegment() {
	s.controller.StartAnnotation(models.ModeOther)
	s.stroke(geometry.Pt(0, 0), geometry.Pt(5, 5), geometry.Pt(10, 5))
	s.stroke(geometry.Pt(50, 50), geometry.Pt(60, 60))

	s.controller.Undo()
	s.Equal(2, s.view.SegmentCount())
	segs := s.annotation.Segments()
	s.Require().Len(segs, 2)
	s.Equal(2, segs[1].ID)

	s.controller.Undo()
	s.controller.Undo()
	s.controller.Undo()
	s.Zero(s.view.SegmentCount())
}

func (s *MainControllerSuite) TestFinishAddsEntry() {
	var finished []models.Entry
	s.controller.AddEventListener(EventAnnotationFinished, func(data interface{}) error {
		finished = append(finished, data.(models.Entry))
		return nil
	})

	s.controller.StartAnnotation(models.ModeContamination)
	s.stroke(geometry.Pt(0, 0), geometry.Pt(5, 5))
	s.controller.FinishAnnotation()

	s.controller.StartAnnotation(models.ModeScratch)
	s.controller.FinishAnnotation()

	s.Equal([]string{"Contamination 1", "Scratch 2"}, s.view.Entries())
	s.False(s.view.Toolbar().FinishVisible())
	s.Equal(models.ModeNone, s.controller.GetApplicationState().Mode)
	s.Require().Len(finished, 2)
	s.Equal(1, finished[0].Segments)
}

func (s *MainControllerSuite) TestLoadClearsSegmentsKeepsEntries() {
	s.openSample()
	s.controller.StartAnnotation(models.ModeScratch)
	s.stroke(geometry.Pt(10, 10), geometry.Pt(20, 20))
	s.controller.FinishAnnotation()
	s.controller.StartAnnotation(models.ModeOther)
	s.stroke(geometry.Pt(30, 30), geometry.Pt(40, 40))

	s.openSample()

	s.Zero(s.view.SegmentCount())
	s.Empty(s.annotation.Segments())
	s.Equal([]string{"Scratch 1"}, s.view.Entries())
}

func (s *MainControllerSuite) TestResizeReprojectsSegments() {
	s.openSample()
	s.controller.StartAnnotation(models.ModeScratch)
	s.stroke(geometry.Pt(100, 100), geometry.Pt(150, 120))

	s.view.Canvas().Resize(fyne.NewSize(800, 600))

	segs := s.annotation.Segments()
	s.Require().Len(segs, 1)
	from, to := s.annotation.Project(segs[0])
	line, ok := s.view.Canvas().Segment(segs[0].ID)
	s.Require().True(ok)
	s.InDelta(from.X, float64(line.Position1.X), 0.01)
	s.InDelta(from.Y, float64(line.Position1.Y), 0.01)
	s.InDelta(to.X, float64(line.Position2.X), 0.01)
	s.InDelta(to.Y, float64(line.Position2.Y), 0.01)
	s.NotEqual(geometry.Pt(100, 100), from, "segment follows the drawing")
}

func (s *MainControllerSuite) TestLoadErrorIsReported() {
	err := s.controller.OpenDrawing(context.Background(), "notes.txt", strings.NewReader("0\nEOF\n"))
	s.ErrorIs(err, services.ErrUnsupportedFormat)
	s.False(s.controller.GetApplicationState().HasDrawing)
	s.NotNil(s.window.Canvas().Overlays().Top(), "error dialog is shown")
}

func (s *MainControllerSuite) TestEventHandlerErrorsDoNotStopOthers() {
	calls := 0
	s.controller.AddEventListener(EventDrawingLoaded, func(interface{}) error {
		calls++
		return context.Canceled
	})
	s.controller.AddEventListener(EventDrawingLoaded, func(interface{}) error {
		calls++
		return nil
	})

	s.openSample()
	s.Equal(2, calls)
}

func (s *MainControllerSuite) TestSinglePointDrawingIsRejectedOnce() {
	src := "0\nSECTION\n2\nENTITIES\n0\nPOINT\n10\n3\n20\n4\n0\nENDSEC\n0\nEOF\n"

	err := s.controller.OpenDrawing(context.Background(), "dot.dxf", strings.NewReader(src))
	s.ErrorIs(err, geometry.ErrDegenerateBounds)
	s.False(s.controller.GetApplicationState().HasDrawing)
	s.Len(s.window.Canvas().Overlays().List(), 1)

	s.view.Canvas().Resize(fyne.NewSize(500, 350))
	s.view.Canvas().Resize(fyne.NewSize(640, 480))

	s.Len(s.window.Canvas().Overlays().List(), 1, "resizing does not report the failed load again")
	s.Equal(geometry.Identity(), s.annotation.Viewport())
	s.Zero(s.view.Canvas().DrawingObjectCount())
}
