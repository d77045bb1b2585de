package app

import (
	"errors"
	"fmt"
	"os"

	"imgtransform/internal/gui"
	"imgtransform/internal/logger"
	"imgtransform/internal/pipeline"
	"imgtransform/internal/processing/filters"
	"imgtransform/internal/session"
	"imgtransform/internal/workspace"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

const prefLastDirectory = "lastDirectory"

// Handlers run on the fyne UI thread; every operation is synchronous.
type Handlers struct {
	session    *session.Session
	guiManager *gui.Manager
	prefs      fyne.Preferences
	logger     logger.Logger
	quit       func()
}

func NewHandlers(sess *session.Session, gm *gui.Manager, prefs fyne.Preferences, log logger.Logger, quit func()) *Handlers {
	return &Handlers{
		session:    sess,
		guiManager: gm,
		prefs:      prefs,
		logger:     log,
		quit:       quit,
	}
}

func (h *Handlers) HandleOpenDir() {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			h.showError(err)
			return
		}
		if uri == nil {
			return
		}
		h.OpenDir(uri.Path())
	}, h.guiManager.GetWindow())

	if last := h.LastDirectory(); last != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(last)); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Show()
}

// OpenDir switches the working directory to dir and lists its images.
func (h *Handlers) OpenDir(dir string) bool {
	files, err := h.session.OpenDir(dir)
	if err != nil {
		h.showError(err)
		return false
	}

	workdir := h.session.Workdir()
	if h.prefs != nil {
		h.prefs.SetString(prefLastDirectory, workdir)
	}

	h.guiManager.SetDirectory(workdir)
	h.guiManager.SetFiles(files)
	h.guiManager.ClearImage()
	h.guiManager.UpdateStatus(fmt.Sprintf("%d images", len(files)))
	return true
}

func (h *Handlers) LastDirectory() string {
	if h.prefs == nil {
		return ""
	}
	return h.prefs.String(prefLastDirectory)
}

func (h *Handlers) HandleSelect(name string) {
	preview, err := h.session.Select(name)
	if err != nil {
		h.showError(err)
		return
	}

	h.guiManager.ShowImage(h.session.FileName(), preview)
	h.guiManager.UpdateStatus("Loaded " + h.session.FileName())
}

func (h *Handlers) HandleTransform(f filters.Filter) {
	preview, err := h.session.Transform(f)
	if preview != nil {
		h.guiManager.ShowImage(h.session.FileName(), preview)
	}
	if err != nil {
		h.showError(err)
		return
	}

	h.guiManager.UpdateStatus(f.String() + " applied")
}

func (h *Handlers) HandleSave() {
	path, err := h.session.Save()
	if err != nil {
		h.showError(err)
		return
	}
	h.guiManager.UpdateStatus("Saved " + path)
}

func (h *Handlers) HandleUndo() {
	preview, err := h.session.Undo()
	if err != nil {
		h.showError(err)
		return
	}

	h.guiManager.ShowImage(h.session.FileName(), preview)
	h.guiManager.UpdateStatus("Undone")
}

func (h *Handlers) HandleAbout() {
	h.guiManager.ShowInformation("About "+AppName, fmt.Sprintf(
		"%s %s\nEngine: %s\nResults are written to the %s directory.",
		AppName, AppVersion, h.session.EngineName(), workspace.OutputDirName))
}

func (h *Handlers) HandleExit() {
	if h.quit != nil {
		h.quit()
	}
}

func (h *Handlers) showError(err error) {
	h.guiManager.ShowError(errorTitle(err), err)
}

func errorTitle(err error) string {
	switch {
	case errors.Is(err, session.ErrNoImage):
		return "No image loaded"
	case errors.Is(err, session.ErrNothingToUndo):
		return "Nothing to undo"
	case errors.Is(err, workspace.ErrUnsupportedFormat):
		return "Unsupported format"
	case errors.Is(err, workspace.ErrNoDirectory):
		return "No directory"
	case errors.Is(err, filters.ErrUnknownFilter):
		return "Unknown filter"
	case errors.Is(err, pipeline.ErrDecode):
		return "Cannot read image"
	case errors.Is(err, pipeline.ErrEncode), errors.Is(err, os.ErrPermission):
		return "Cannot write image"
	default:
		return "I/O error"
	}
}
