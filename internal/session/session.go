// Package session holds the browsing state of one window: the working
// directory, the selected file and the image currently loaded from it.
package session

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"imgtransform/internal/logger"
	"imgtransform/internal/pipeline"
	"imgtransform/internal/processing/filters"
	"imgtransform/internal/timing"
	"imgtransform/internal/workspace"
)

const DefaultHistorySize = 10

var (
	ErrNoImage       = errors.New("no image loaded")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrClosed        = errors.New("session closed")
)

type Options struct {
	HistorySize int
	// Timings, when set, receives the duration of every filter application.
	Timings *timing.Tracker
}

type Session struct {
	mu      sync.Mutex
	engine  pipeline.Engine
	logger  logger.Logger
	workdir string
	file    string
	current pipeline.Image
	history *history
	timings *timing.Tracker
	closed  bool
}

func New(engine pipeline.Engine, log logger.Logger, opts Options) *Session {
	if log == nil {
		log = logger.Nop()
	}
	if opts.HistorySize < 0 {
		opts.HistorySize = 0
	}

	return &Session{
		engine:  engine,
		logger:  log,
		history: newHistory(opts.HistorySize),
		timings: opts.Timings,
	}
}

// OpenDir makes dir the working directory and returns its image files.
// The current selection and image are released.
func (s *Session) OpenDir(dir string) ([]string, error) {
	files, err := workspace.List(dir)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	s.releaseLocked()
	s.workdir = abs
	s.file = ""

	s.logger.Info("Session", "working directory opened", map[string]interface{}{
		"workdir": abs,
		"images":  len(files),
	})

	return files, nil
}

// Select loads name from the working directory, replacing the current image.
func (s *Session) Select(name string) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if s.workdir == "" {
		return nil, workspace.ErrNoDirectory
	}

	name = filepath.Base(name)
	if err := workspace.CheckImage(name); err != nil {
		return nil, err
	}

	img, err := s.engine.Load(filepath.Join(s.workdir, name))
	if err != nil {
		return nil, err
	}

	preview, err := img.Preview()
	if err != nil {
		img.Close()
		return nil, err
	}

	s.releaseLocked()
	s.current = img
	s.file = name

	return preview, nil
}

// Transform applies f to the loaded image, keeps the result as the current
// image and writes it to the Modified directory. When only the write fails
// the image is still replaced and the wrapped error is returned with the
// preview.
func (s *Session) Transform(f filters.Filter) (image.Image, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %s", filters.ErrUnknownFilter, f)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if s.current == nil {
		return nil, ErrNoImage
	}

	stop := s.timings.Start(f.String())
	out, err := s.engine.Apply(s.current, f)
	elapsed := stop()
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", f, err)
	}

	preview, err := out.Preview()
	if err != nil {
		out.Close()
		return nil, err
	}

	s.history.push(s.current)
	s.current = out

	s.logger.Info("Session", "image transformed", map[string]interface{}{
		"filter":  f.String(),
		"file":    s.file,
		"width":   out.Bounds().Dx(),
		"height":  out.Bounds().Dy(),
		"elapsed": elapsed.String(),
	})

	if _, err := s.saveLocked(); err != nil {
		return preview, err
	}
	return preview, nil
}

// Save writes the current image to Modified/<file> and returns the path.
func (s *Session) Save() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrClosed
	}
	return s.saveLocked()
}

func (s *Session) saveLocked() (string, error) {
	if s.current == nil {
		return "", ErrNoImage
	}

	if _, err := workspace.EnsureOutputDir(s.workdir); err != nil {
		return "", fmt.Errorf("save failed: %w", err)
	}

	path := workspace.OutputPath(s.workdir, s.file)
	if err := s.engine.Save(s.current, path); err != nil {
		return "", fmt.Errorf("save failed: %w", err)
	}
	return path, nil
}

// Undo restores the image preceding the last transformation. The Modified
// copy is not rewritten until the next Save or Transform.
func (s *Session) Undo() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if s.current == nil {
		return nil, ErrNoImage
	}

	prev, ok := s.history.pop()
	if !ok {
		return nil, ErrNothingToUndo
	}

	preview, err := prev.Preview()
	if err != nil {
		prev.Close()
		return nil, err
	}

	s.current.Close()
	s.current = prev
	return preview, nil
}

func (s *Session) Workdir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workdir
}

func (s *Session) FileName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file
}

func (s *Session) HasImage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.len() > 0
}

// Bounds returns the size of the loaded image, or an empty rectangle.
func (s *Session) Bounds() image.Rectangle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return image.Rectangle{}
	}
	return s.current.Bounds()
}

func (s *Session) EngineName() string {
	return s.engine.Name()
}

// Close releases the loaded image and its history. It is safe to call more
// than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.releaseLocked()
	s.closed = true

	s.logger.Debug("Session", "closed", nil)
}

// Shutdown lets the shutdown manager close the session.
func (s *Session) Shutdown() {
	s.Close()
}

func (s *Session) releaseLocked() {
	s.history.clear()
	if s.current != nil {
		s.current.Close()
		s.current = nil
	}
}
