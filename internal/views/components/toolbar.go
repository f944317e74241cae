package components

import (
	"qualitymap/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Toolbar is the right-hand button panel.
type Toolbar struct {
	container    *fyne.Container
	loadButton   *widget.Button
	modeButtons  map[models.Mode]*widget.Button
	undoButton   *widget.Button
	finishButton *widget.Button

	// Event handlers
	loadHandler   func()
	modeHandler   func(models.Mode)
	undoHandler   func()
	finishHandler func()

	activeMode models.Mode
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{
		modeButtons: make(map[models.Mode]*widget.Button),
	}
	toolbar.createComponents()
	toolbar.buildLayout()
	toolbar.setupEventHandlers()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.loadButton = widget.NewButton("Load DXF", nil)
	t.loadButton.Importance = widget.HighImportance

	for _, mode := range models.Modes() {
		t.modeButtons[mode] = widget.NewButton(mode.Label(), nil)
	}

	t.undoButton = widget.NewButton("Undo", nil)

	t.finishButton = widget.NewButton("Finished", nil)
	t.finishButton.Importance = widget.SuccessImportance
	t.finishButton.Hide()
}

func (t *Toolbar) buildLayout() {
	objects := []fyne.CanvasObject{t.loadButton, widget.NewSeparator()}
	for _, mode := range models.Modes() {
		objects = append(objects, t.modeButtons[mode])
	}
	objects = append(objects, widget.NewSeparator(), t.undoButton, t.finishButton)

	t.container = container.NewVBox(objects...)
}

func (t *Toolbar) setupEventHandlers() {
	t.loadButton.OnTapped = func() {
		if t.loadHandler != nil {
			t.loadHandler()
		}
	}

	for mode, button := range t.modeButtons {
		button.OnTapped = func() {
			if t.modeHandler != nil {
				t.modeHandler(mode)
			}
		}
	}

	t.undoButton.OnTapped = func() {
		if t.undoHandler != nil {
			t.undoHandler()
		}
	}

	t.finishButton.OnTapped = func() {
		if t.finishHandler != nil {
			t.finishHandler()
		}
	}
}

// Event handler setters

func (t *Toolbar) SetLoadHandler(handler func()) {
	t.loadHandler = handler
}

func (t *Toolbar) SetModeHandler(handler func(models.Mode)) {
	t.modeHandler = handler
}

func (t *Toolbar) SetUndoHandler(handler func()) {
	t.undoHandler = handler
}

func (t *Toolbar) SetFinishHandler(handler func()) {
	t.finishHandler = handler
}

// SetActiveMode highlights the button of the active mode and shows the
// Finished button while a mode is active.
func (t *Toolbar) SetActiveMode(mode models.Mode) {
	t.activeMode = mode
	for m, button := range t.modeButtons {
		if m == mode {
			button.Importance = widget.HighImportance
		} else {
			button.Importance = widget.MediumImportance
		}
		button.Refresh()
	}

	if mode == models.ModeNone {
		t.finishButton.Hide()
	} else {
		t.finishButton.Show()
	}
}

func (t *Toolbar) ActiveMode() models.Mode {
	return t.activeMode
}

// FinishVisible reports whether the Finished button is shown.
func (t *Toolbar) FinishVisible() bool {
	return t.finishButton.Visible()
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
