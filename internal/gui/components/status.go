package components

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type StatusBar struct {
	container      *fyne.Container
	statusLabel    *widget.Label
	directoryLabel *widget.Label
	imageLabel     *widget.Label
}

func NewStatusBar() *StatusBar {
	statusLabel := widget.NewLabel("Ready")
	directoryLabel := widget.NewLabel("No directory")
	directoryLabel.Truncation = fyne.TextTruncateEllipsis
	imageLabel := widget.NewLabel("")

	infoContainer := container.NewHBox(
		imageLabel,
		widget.NewSeparator(),
		statusLabel,
	)

	mainContainer := container.NewBorder(
		nil, nil,
		nil,
		infoContainer,
		directoryLabel,
	)

	return &StatusBar{
		container:      mainContainer,
		statusLabel:    statusLabel,
		directoryLabel: directoryLabel,
		imageLabel:     imageLabel,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) Status() string {
	return sb.statusLabel.Text
}

func (sb *StatusBar) SetDirectory(dir string) {
	if dir == "" {
		dir = "No directory"
	}
	sb.directoryLabel.SetText(dir)
}

func (sb *StatusBar) Directory() string {
	return sb.directoryLabel.Text
}

// SetImage shows the file name and size, or clears the field for an empty name.
func (sb *StatusBar) SetImage(name string, bounds image.Rectangle) {
	if name == "" {
		sb.imageLabel.SetText("")
		return
	}
	sb.imageLabel.SetText(fmt.Sprintf("%s  %d×%d", name, bounds.Dx(), bounds.Dy()))
}

func (sb *StatusBar) ImageInfo() string {
	return sb.imageLabel.Text
}
