// Package gui builds the main window: a file list on the left, the image
// preview and filter buttons on the right, the menus and a status bar.
package gui

import (
	"image"

	"imgtransform/internal/gui/components"
	"imgtransform/internal/logger"
	"imgtransform/internal/processing/filters"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

const leftPanelOffset = 0.2

type Manager struct {
	window     fyne.Window
	logger     logger.Logger
	isShutdown bool

	fileList     *components.FileList
	imageDisplay *components.ImageDisplay
	transforms   *components.TransformGrid
	statusBar    *components.StatusBar

	openHandler      func()
	selectHandler    func(string)
	transformHandler func(filters.Filter)
	saveHandler      func()
	undoHandler      func()
	exitHandler      func()
	aboutHandler     func()
}

func NewManager(window fyne.Window, log logger.Logger) *Manager {
	m := &Manager{
		window:       window,
		logger:       log,
		fileList:     components.NewFileList(),
		imageDisplay: components.NewImageDisplay(),
		transforms:   components.NewTransformGrid(),
		statusBar:    components.NewStatusBar(),
	}

	m.fileList.SetOpenHandler(func() { m.call(m.openHandler) })
	m.fileList.SetSelectHandler(func(name string) {
		m.logger.Debug("GUIManager", "file selected", map[string]interface{}{
			"file": name,
		})
		if m.selectHandler != nil {
			m.selectHandler(name)
		}
	})
	m.transforms.SetHandler(m.requestTransform)
	m.transforms.SetEnabled(false)
	m.imageDisplay.SetContextMenu(m.buildTransformMenu(""))

	m.logger.Info("GUIManager", "initialized", map[string]interface{}{
		"filters": len(filters.All()),
	})

	return m
}

func (m *Manager) call(handler func()) {
	if handler != nil {
		handler()
	}
}

func (m *Manager) requestTransform(f filters.Filter) {
	m.logger.Debug("GUIManager", "transform requested", map[string]interface{}{
		"filter": f.String(),
	})
	if m.transformHandler != nil {
		m.transformHandler(f)
	}
}

func (m *Manager) GetMainContainer() fyne.CanvasObject {
	right := container.NewBorder(
		nil,
		m.transforms.GetContainer(),
		nil, nil,
		m.imageDisplay,
	)

	split := container.NewHSplit(m.fileList.GetContainer(), right)
	split.Offset = leftPanelOffset

	return container.NewBorder(nil, m.statusBar.GetContainer(), nil, nil, split)
}

func (m *Manager) GetWindow() fyne.Window {
	return m.window
}

func (m *Manager) SetOpenDirectoryHandler(handler func()) { m.openHandler = handler }
func (m *Manager) SetSelectHandler(handler func(string))  { m.selectHandler = handler }
func (m *Manager) SetSaveHandler(handler func())          { m.saveHandler = handler }
func (m *Manager) SetUndoHandler(handler func())          { m.undoHandler = handler }
func (m *Manager) SetExitHandler(handler func())          { m.exitHandler = handler }
func (m *Manager) SetAboutHandler(handler func())         { m.aboutHandler = handler }

func (m *Manager) SetTransformHandler(handler func(filters.Filter)) {
	m.transformHandler = handler
}

func (m *Manager) SetFiles(files []string) {
	m.fileList.SetFiles(files)
}

func (m *Manager) SetDirectory(dir string) {
	m.statusBar.SetDirectory(dir)
}

// ShowImage displays img as the current image of file name.
func (m *Manager) ShowImage(name string, img image.Image) {
	m.imageDisplay.SetImage(img)
	if img != nil {
		m.statusBar.SetImage(name, img.Bounds())
	}
	m.transforms.SetEnabled(img != nil)
}

func (m *Manager) ClearImage() {
	m.imageDisplay.Clear()
	m.statusBar.SetImage("", image.Rectangle{})
	m.transforms.SetEnabled(false)
}

func (m *Manager) UpdateStatus(status string) {
	m.statusBar.SetStatus(status)
	m.logger.Debug("GUIManager", "status updated", map[string]interface{}{
		"status": status,
	})
}

func (m *Manager) ShowError(title string, err error) {
	m.logger.Error("GUIManager", err, map[string]interface{}{
		"title": title,
	})

	m.statusBar.SetStatus(title)
	dialog.ShowError(err, m.window)
}

func (m *Manager) ShowInformation(title, message string) {
	dialog.ShowInformation(title, message, m.window)
}

// Accessors used by the application handlers and tests.
func (m *Manager) FileList() *components.FileList           { return m.fileList }
func (m *Manager) ImageDisplay() *components.ImageDisplay   { return m.imageDisplay }
func (m *Manager) TransformGrid() *components.TransformGrid { return m.transforms }
func (m *Manager) StatusBar() *components.StatusBar         { return m.statusBar }

func (m *Manager) Shutdown() {
	if m.isShutdown {
		return
	}

	m.isShutdown = true
	m.logger.Info("GUIManager", "shutdown initiated", nil)
}
