package components

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	PreviewMinWidth  = 480
	PreviewMinHeight = 360
)

// ImageDisplay shows the current image scaled to fit and opens the
// transform context menu on secondary tap.
type ImageDisplay struct {
	widget.BaseWidget

	image       *canvas.Image
	placeholder *widget.Label
	menu        *fyne.Menu
}

func NewImageDisplay() *ImageDisplay {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	img.SetMinSize(fyne.NewSize(PreviewMinWidth, PreviewMinHeight))

	placeholder := widget.NewLabel("Load an image")
	placeholder.Alignment = fyne.TextAlignCenter

	d := &ImageDisplay{
		image:       img,
		placeholder: placeholder,
	}
	d.ExtendBaseWidget(d)
	return d
}

func (d *ImageDisplay) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(d.placeholder, d.image))
}

func (d *ImageDisplay) SetContextMenu(menu *fyne.Menu) {
	d.menu = menu
}

func (d *ImageDisplay) TappedSecondary(ev *fyne.PointEvent) {
	if d.menu == nil {
		return
	}
	c := fyne.CurrentApp().Driver().CanvasForObject(d)
	if c == nil {
		return
	}
	widget.ShowPopUpMenuAtPosition(d.menu, c, ev.AbsolutePosition)
}

func (d *ImageDisplay) SetImage(img image.Image) {
	if img == nil {
		d.Clear()
		return
	}

	d.image.Image = img
	d.placeholder.Hide()
	d.image.Refresh()
}

func (d *ImageDisplay) Clear() {
	d.image.Image = nil
	d.placeholder.Show()
	d.image.Refresh()
}

func (d *ImageDisplay) Image() image.Image {
	return d.image.Image
}
