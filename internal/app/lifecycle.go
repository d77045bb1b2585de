package app

import (
	"context"

	"imgtransform/internal/gui"
	"imgtransform/internal/logger"
	"imgtransform/internal/session"
	"imgtransform/internal/shutdown"
)

// Lifecycle releases the window's resources exactly once, whether the user
// closes the window or the process is signalled.
type Lifecycle struct {
	shutdown *shutdown.Manager
	logger   logger.Logger
}

func NewLifecycle(sm *shutdown.Manager, sess *session.Session, gm *gui.Manager, log logger.Logger) *Lifecycle {
	// Registered first so it is closed last: the GUI may still reference
	// previews until it has shut down.
	sm.Register("session", sess)
	sm.Register("gui", gm)

	return &Lifecycle{
		shutdown: sm,
		logger:   log,
	}
}

func (l *Lifecycle) Listen(ctx context.Context, onSignal func()) {
	l.shutdown.Listen(ctx, onSignal)
}

func (l *Lifecycle) Shutdown() {
	l.shutdown.Shutdown()
}

func (l *Lifecycle) Done() <-chan struct{} {
	return l.shutdown.Done()
}
