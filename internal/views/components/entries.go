package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"
)

// EntryList is the bottom panel listing completed annotation labels.
type EntryList struct {
	items binding.StringList
	list  *widget.List
}

func NewEntryList() *EntryList {
	items := binding.NewStringList()
	list := widget.NewListWithData(items,
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(item binding.DataItem, obj fyne.CanvasObject) {
			obj.(*widget.Label).Bind(item.(binding.String))
		},
	)
	return &EntryList{items: items, list: list}
}

// Append adds a label at the end and scrolls it into view.
func (el *EntryList) Append(label string) error {
	if err := el.items.Append(label); err != nil {
		return err
	}
	el.list.ScrollToBottom()
	return nil
}

func (el *EntryList) Count() int {
	return el.items.Length()
}

// Items returns the labels in insertion order.
func (el *EntryList) Items() []string {
	items, err := el.items.Get()
	if err != nil {
		return nil
	}
	return items
}

func (el *EntryList) GetWidget() fyne.CanvasObject {
	return el.list
}
