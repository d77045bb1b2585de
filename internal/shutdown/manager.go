// Package shutdown closes registered components in reverse order, either on
// request or when the process receives SIGINT or SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"imgtransform/internal/logger"
)

const DefaultTimeout = 10 * time.Second

type Shutdownable interface {
	Shutdown()
}

type component struct {
	name string
	c    Shutdownable
}

type Manager struct {
	components []component
	logger     logger.Logger
	timeout    time.Duration
	mu         sync.Mutex
	once       sync.Once
	done       chan struct{}
}

func NewManager(log logger.Logger, timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{
		logger:  log,
		timeout: timeout,
		done:    make(chan struct{}),
	}
}

func (m *Manager) Register(name string, c Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, component{name: name, c: c})
}

// Listen calls Shutdown and then onSignal when a termination signal arrives
// or ctx is cancelled. It returns immediately.
func (m *Manager) Listen(ctx context.Context, onSignal func()) {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer stop()

		select {
		case <-sigCtx.Done():
		case <-m.done:
			return
		}

		m.logger.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
			"reason": context.Cause(sigCtx).Error(),
		})
		m.Shutdown()
		if onSignal != nil {
			onSignal()
		}
	}()
}

// Shutdown runs once; later calls return immediately.
func (m *Manager) Shutdown() {
	m.once.Do(m.shutdown)
}

func (m *Manager) shutdown() {
	defer close(m.done)

	m.mu.Lock()
	components := append([]component(nil), m.components...)
	m.mu.Unlock()

	m.logger.Info("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
		"components": len(components),
	})

	for i := len(components) - 1; i >= 0; i-- {
		comp := components[i]

		finished := make(chan struct{})
		go func() {
			defer close(finished)
			comp.c.Shutdown()
		}()

		select {
		case <-finished:
			m.logger.Debug("ShutdownManager", "component stopped", map[string]interface{}{
				"component": comp.name,
			})
		case <-time.After(m.timeout):
			m.logger.Warning("ShutdownManager", "component shutdown timeout", map[string]interface{}{
				"component": comp.name,
			})
		}
	}

	m.logger.Info("ShutdownManager", "shutdown sequence completed", nil)
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
