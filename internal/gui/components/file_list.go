package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

type FileList struct {
	container  *fyne.Container
	OpenButton *widget.Button
	List       *widget.List
	files      []string

	openHandler   func()
	selectHandler func(string)
}

func NewFileList() *FileList {
	fl := &FileList{}

	fl.OpenButton = widget.NewButtonWithIcon("Choose directory", theme.FolderOpenIcon(), func() {
		if fl.openHandler != nil {
			fl.openHandler()
		}
	})

	fl.List = widget.NewList(
		func() int { return len(fl.files) },
		func() fyne.CanvasObject { return widget.NewLabel("template.jpeg") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(fl.files) {
				obj.(*widget.Label).SetText(fl.files[id])
			}
		},
	)
	fl.List.OnSelected = func(id widget.ListItemID) {
		if id < 0 || id >= len(fl.files) || fl.selectHandler == nil {
			return
		}
		fl.selectHandler(fl.files[id])
	}

	fl.container = container.NewBorder(fl.OpenButton, nil, nil, nil, fl.List)
	return fl
}

func (fl *FileList) GetContainer() *fyne.Container {
	return fl.container
}

func (fl *FileList) SetOpenHandler(handler func()) {
	fl.openHandler = handler
}

func (fl *FileList) SetSelectHandler(handler func(string)) {
	fl.selectHandler = handler
}

// SetFiles replaces the listed names and clears the selection.
func (fl *FileList) SetFiles(files []string) {
	fl.files = append([]string(nil), files...)
	fl.List.UnselectAll()
	fl.List.Refresh()
}

func (fl *FileList) Files() []string {
	return append([]string(nil), fl.files...)
}
