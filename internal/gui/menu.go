package gui

import (
	"imgtransform/internal/processing/filters"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

func shortcut(key fyne.KeyName) fyne.Shortcut {
	return &desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault}
}

// MainMenu builds the File, Transform and Help menus.
func (m *Manager) MainMenu() *fyne.MainMenu {
	openItem := fyne.NewMenuItem("Choose directory...", func() { m.call(m.openHandler) })
	openItem.Shortcut = shortcut(fyne.KeyO)

	saveItem := fyne.NewMenuItem("Save", func() { m.call(m.saveHandler) })
	saveItem.Shortcut = shortcut(fyne.KeyS)

	undoItem := fyne.NewMenuItem("Undo", func() { m.call(m.undoHandler) })
	undoItem.Shortcut = shortcut(fyne.KeyZ)

	exitItem := fyne.NewMenuItem("Exit", func() { m.call(m.exitHandler) })
	exitItem.IsQuit = true

	fileMenu := fyne.NewMenu("File",
		openItem,
		saveItem,
		undoItem,
		fyne.NewMenuItemSeparator(),
		exitItem,
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() { m.call(m.aboutHandler) }),
	)

	return fyne.NewMainMenu(fileMenu, m.buildTransformMenu("Transform"), helpMenu)
}

func (m *Manager) buildTransformMenu(label string) *fyne.Menu {
	all := filters.All()
	items := make([]*fyne.MenuItem, 0, len(all))
	for _, f := range all {
		f := f
		items = append(items, fyne.NewMenuItem(f.String(), func() {
			m.requestTransform(f)
		}))
	}
	return fyne.NewMenu(label, items...)
}
