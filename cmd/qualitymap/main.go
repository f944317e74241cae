package main

import (
	"fmt"
	"os"
	"runtime"

	"qualitymap/internal/config"
	"qualitymap/internal/controllers"
	"qualitymap/internal/logger"
	"qualitymap/internal/models"
	"qualitymap/internal/services"
	"qualitymap/internal/shutdown"
	"qualitymap/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "QualityMap"
	AppID      = "com.qualitymap.annotator"
	AppVersion = "1.0.0"
)

// Application holds the wired components for the lifetime of the window.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger

	controller *controllers.MainController
	view       *views.MainView

	drawingService    *services.DrawingService
	annotationService *services.AnnotationService

	shutdown *shutdown.Manager
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(logger.ParseLevel(cfg.Log.Level), cfg.Log.JSON)

	application := NewApplication(cfg, appLogger)
	application.Run()

	appLogger.Info("Application", "application terminated", nil)
}

// NewApplication builds the models, services, view and controller.
func NewApplication(cfg config.Config, appLogger logger.Logger) *Application {
	fyneApp := app.NewWithID(AppID)
	fyneApp.SetMetadata(&fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})

	window := fyneApp.NewWindow(views.WindowTitle)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()
	window.SetMaster()

	appLogger.Info("Application", "application starting", map[string]interface{}{
		"version":     AppVersion,
		"window_size": fmt.Sprintf("%.0fx%.0f", cfg.Window.Width, cfg.Window.Height),
		"go_version":  runtime.Version(),
		"flip_y":      cfg.Render.FlipY,
	})

	drawingRepo := models.NewDrawingRepository()
	annotationRepo := models.NewAnnotationRepository()

	drawingService := services.NewDrawingService(drawingRepo, appLogger, cfg.Render)
	annotationService := services.NewAnnotationService(annotationRepo, appLogger)

	mainView := views.NewMainView(window, cfg.Annotation.StrokeWidth)
	mainController := controllers.NewMainController(drawingService, annotationService, appLogger)
	mainController.SetMainView(mainView)

	manager := shutdown.NewManager(appLogger)
	manager.Register("drawing service", drawingService)
	manager.Register("annotation service", annotationService)
	manager.Register("controller", mainController)

	application := &Application{
		fyneApp:           fyneApp,
		window:            window,
		logger:            appLogger,
		controller:        mainController,
		view:              mainView,
		drawingService:    drawingService,
		annotationService: annotationService,
		shutdown:          manager,
	}
	application.setupWindowEvents()

	return application
}

// Run shows the window and blocks until the application exits.
func (a *Application) Run() {
	a.shutdown.Listen()

	go func() {
		<-a.shutdown.Done()
		fyne.Do(a.fyneApp.Quit)
	}()

	a.window.ShowAndRun()
	a.shutdown.Shutdown()
}

func (a *Application) setupWindowEvents() {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "window close requested", nil)
		a.view.ShowConfirm("Exit", "Close the drawing and exit?", func(confirmed bool) {
			if confirmed {
				a.window.Close()
			}
		})
	})

	a.window.SetOnClosed(func() {
		a.logger.Info("Application", "window closed", nil)
		go a.shutdown.Shutdown()
	})
}
