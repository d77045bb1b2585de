package components

import (
	"imgtransform/internal/processing/filters"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const gridRows = 2

// TransformGrid lays the filter buttons out in two rows, pairing
// consecutive filters vertically.
type TransformGrid struct {
	container *fyne.Container
	buttons   map[filters.Filter]*widget.Button
	handler   func(filters.Filter)
}

func NewTransformGrid() *TransformGrid {
	tg := &TransformGrid{buttons: make(map[filters.Filter]*widget.Button)}

	all := filters.All()
	columns := (len(all) + gridRows - 1) / gridRows
	cells := make([]fyne.CanvasObject, 0, columns*gridRows)

	for row := 0; row < gridRows; row++ {
		for col := 0; col < columns; col++ {
			i := col*gridRows + row
			if i >= len(all) {
				cells = append(cells, widget.NewLabel(""))
				continue
			}
			f := all[i]
			button := widget.NewButton(f.String(), func() {
				if tg.handler != nil {
					tg.handler(f)
				}
			})
			tg.buttons[f] = button
			cells = append(cells, button)
		}
	}

	tg.container = container.NewGridWithColumns(columns, cells...)
	return tg
}

func (tg *TransformGrid) GetContainer() *fyne.Container {
	return tg.container
}

func (tg *TransformGrid) SetHandler(handler func(filters.Filter)) {
	tg.handler = handler
}

func (tg *TransformGrid) Button(f filters.Filter) *widget.Button {
	return tg.buttons[f]
}

func (tg *TransformGrid) SetEnabled(enabled bool) {
	for _, b := range tg.buttons {
		if enabled {
			b.Enable()
		} else {
			b.Disable()
		}
	}
}
