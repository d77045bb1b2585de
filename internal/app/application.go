package app

import (
	"context"
	"fmt"

	"imgtransform/internal/config"
	"imgtransform/internal/gui"
	"imgtransform/internal/logger"
	"imgtransform/internal/pipeline"
	"imgtransform/internal/session"
	"imgtransform/internal/shutdown"

	"fyne.io/fyne/v2"
)

const (
	AppName    = "Image Transformer"
	AppID      = "com.imgtransform.viewer"
	AppVersion = "1.0.0"

	referenceWidth  = 1600
	referenceHeight = 1000
	windowScale     = 0.75
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	guiManager *gui.Manager
	session    *session.Session
	handlers   *Handlers
	lifecycle  *Lifecycle
	config     config.Config
	logger     logger.Logger
}

// NewApplication builds the window and wires the session behind it. The
// caller owns fyneApp so tests can pass fyne's test app.
func NewApplication(fyneApp fyne.App, cfg config.Config, log logger.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine, err := pipeline.New(cfg.Engine, log)
	if err != nil {
		return nil, fmt.Errorf("engine %q: %w", cfg.Engine, err)
	}

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(referenceWidth*windowScale, referenceHeight*windowScale))
	window.CenterOnScreen()
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"version": AppVersion,
		"engine":  engine.Name(),
		"history": cfg.HistorySize,
	})

	sess := session.New(engine, log, session.Options{HistorySize: cfg.HistorySize})
	guiManager := gui.NewManager(window, log)
	lifecycle := NewLifecycle(shutdown.NewManager(log, shutdown.DefaultTimeout), sess, guiManager, log)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		guiManager: guiManager,
		session:    sess,
		lifecycle:  lifecycle,
		config:     cfg,
		logger:     log,
	}
	application.handlers = NewHandlers(sess, guiManager, fyneApp.Preferences(), log, application.quit)
	application.setupHandlers()

	window.SetMainMenu(guiManager.MainMenu())
	window.SetContent(guiManager.GetMainContainer())

	log.Info("Application", "initialization complete", nil)
	return application, nil
}

func (a *Application) setupHandlers() {
	h := a.handlers

	a.guiManager.SetOpenDirectoryHandler(h.HandleOpenDir)
	a.guiManager.SetSelectHandler(h.HandleSelect)
	a.guiManager.SetTransformHandler(h.HandleTransform)
	a.guiManager.SetSaveHandler(h.HandleSave)
	a.guiManager.SetUndoHandler(h.HandleUndo)
	a.guiManager.SetAboutHandler(h.HandleAbout)
	a.guiManager.SetExitHandler(h.HandleExit)
}

// Run shows the window and blocks in the fyne event loop. A termination
// signal or cancellation of ctx closes the session and quits the app.
func (a *Application) Run(ctx context.Context) error {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "window close requested", nil)
		a.quit()
	})

	a.lifecycle.Listen(ctx, func() {
		fyne.Do(a.fyneApp.Quit)
	})

	if dir := a.config.StartDir; dir != "" {
		a.handlers.OpenDir(dir)
	}

	a.window.Show()
	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.lifecycle.Shutdown()
	return nil
}

func (a *Application) quit() {
	a.lifecycle.Shutdown()
	a.fyneApp.Quit()
}

func (a *Application) Window() fyne.Window       { return a.window }
func (a *Application) Handlers() *Handlers       { return a.handlers }
func (a *Application) Session() *session.Session { return a.session }
