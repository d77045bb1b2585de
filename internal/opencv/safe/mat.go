//go:build opencv

// Package safe wraps gocv.Mat so native memory is released exactly once,
// whether Close is called explicitly or the wrapper is garbage collected.
package safe

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"gocv.io/x/gocv"
)

var ErrInvalidMat = errors.New("mat is invalid")

var (
	nextMatID uint64
	liveMats  int64
)

type Mat struct {
	mat     gocv.Mat
	isValid int32
	mu      sync.RWMutex
	id      uint64
	tag     string
}

// Live returns the number of wrapped Mats not yet closed.
func Live() int64 {
	return atomic.LoadInt64(&liveMats)
}

// Wrap takes ownership of mat. An empty mat is closed and rejected.
func Wrap(mat gocv.Mat, tag string) (*Mat, error) {
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("%s: source Mat is empty", tag)
	}

	if mat.Rows() <= 0 || mat.Cols() <= 0 {
		mat.Close()
		return nil, fmt.Errorf("%s: invalid dimensions %dx%d", tag, mat.Cols(), mat.Rows())
	}

	safeMat := &Mat{
		mat:     mat,
		isValid: 1,
		id:      atomic.AddUint64(&nextMatID, 1),
		tag:     tag,
	}
	atomic.AddInt64(&liveMats, 1)

	// Set finalizer for cleanup if Close() is not called
	runtime.SetFinalizer(safeMat, (*Mat).finalize)

	return safeMat, nil
}

func (sm *Mat) IsValid() bool {
	return atomic.LoadInt32(&sm.isValid) == 1
}

func (sm *Mat) Rows() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0
	}
	return sm.mat.Rows()
}

func (sm *Mat) Cols() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0
	}
	return sm.mat.Cols()
}

func (sm *Mat) Channels() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0
	}
	return sm.mat.Channels()
}

func (sm *Mat) Tag() string {
	return sm.tag
}

func (sm *Mat) ID() uint64 {
	return sm.id
}

// With runs fn with the underlying Mat while holding a read lock.
// fn must not retain the Mat.
func (sm *Mat) With(fn func(m gocv.Mat) error) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return ErrInvalidMat
	}
	return fn(sm.mat)
}

func (sm *Mat) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if atomic.CompareAndSwapInt32(&sm.isValid, 1, 0) {
		sm.mat.Close()
		atomic.AddInt64(&liveMats, -1)

		// Clear finalizer since we're cleaning up manually
		runtime.SetFinalizer(sm, nil)
	}
}

// finalize is called by Go's garbage collector as last resort cleanup
func (sm *Mat) finalize() {
	if sm.IsValid() {
		sm.Close()
	}
}
