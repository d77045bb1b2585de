package shutdown

import (
	"context"
	"sync"
	"testing"
	"time"

	"imgtransform/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, name)
}

type named struct {
	name  string
	rec   *recorder
	block chan struct{}
}

func (n named) Shutdown() {
	if n.block != nil {
		<-n.block
	}
	n.rec.add(n.name)
}

func TestShutdownReverseOrderOnce(t *testing.T) {
	rec := &recorder{}
	m := NewManager(logger.Nop(), time.Second)
	m.Register("first", named{name: "first", rec: rec})
	m.Register("second", named{name: "second", rec: rec})

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"second", "first"}, rec.order)
	select {
	case <-m.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestShutdownTimeout(t *testing.T) {
	rec := &recorder{}
	block := make(chan struct{})
	defer close(block)

	m := NewManager(logger.Nop(), 20*time.Millisecond)
	m.Register("fast", named{name: "fast", rec: rec})
	m.Register("stuck", named{name: "stuck", rec: rec, block: block})

	m.Shutdown()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"fast"}, rec.order)
}

func TestListenOnContextCancel(t *testing.T) {
	rec := &recorder{}
	m := NewManager(logger.Nop(), time.Second)
	m.Register("session", named{name: "session", rec: rec})

	called := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	m.Listen(ctx, func() { close(called) })
	cancel()

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown callback not called")
	}
	require.Equal(t, []string{"session"}, rec.order)
}
