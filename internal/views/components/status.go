package components

import (
	"fmt"

	"qualitymap/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays application status and information
type StatusBar struct {
	container      *fyne.Container
	statusLabel    *widget.Label
	drawingInfo    *widget.Label
	annotationInfo *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.drawingInfo = widget.NewLabel("No drawing loaded")
	sb.annotationInfo = widget.NewLabel(annotationText(models.AnnotationStats{}))
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.drawingInfo,
		widget.NewSeparator(),
		sb.annotationInfo,
	)
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetDrawingInfo shows the file name and entity count of the loaded drawing.
func (sb *StatusBar) SetDrawingInfo(name string, entities int) {
	sb.drawingInfo.SetText(fmt.Sprintf("Drawing: %s, %d entities", name, entities))
}

func (sb *StatusBar) GetDrawingInfo() string {
	return sb.drawingInfo.Text
}

func (sb *StatusBar) SetAnnotationInfo(stats models.AnnotationStats) {
	sb.annotationInfo.SetText(annotationText(stats))
}

func (sb *StatusBar) GetAnnotationInfo() string {
	return sb.annotationInfo.Text
}

func annotationText(stats models.AnnotationStats) string {
	return fmt.Sprintf("Mode: %s | Segments: %d | Entries: %d", stats.Mode, stats.Segments, stats.Entries)
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
