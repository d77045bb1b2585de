// Package timing collects per-operation durations, keyed by filter name.
package timing

import (
	"sort"
	"sync"
	"time"
)

type Stats struct {
	Operation string
	Count     int
	Total     time.Duration
	Min       time.Duration
	Max       time.Duration
}

func (s Stats) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Tracker is safe for concurrent use. A nil *Tracker records nothing.
type Tracker struct {
	mu    sync.RWMutex
	stats map[string]*Stats
}

func NewTracker() *Tracker {
	return &Tracker{stats: make(map[string]*Stats)}
}

// Start returns a func that records the time elapsed since Start under
// operation.
func (t *Tracker) Start(operation string) func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		d := time.Since(start)
		t.Record(operation, d)
		return d
	}
}

func (t *Tracker) Record(operation string, d time.Duration) {
	if t == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.stats[operation]
	if !ok {
		s = &Stats{Operation: operation, Min: d, Max: d}
		t.stats[operation] = s
	}
	s.Count++
	s.Total += d
	if d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
}

func (t *Tracker) Get(operation string) (Stats, bool) {
	if t == nil {
		return Stats{}, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	s, ok := t.stats[operation]
	if !ok {
		return Stats{}, false
	}
	return *s, true
}

// All returns a snapshot sorted by operation name.
func (t *Tracker) All() []Stats {
	if t == nil {
		return nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	all := make([]Stats, 0, len(t.stats))
	for _, s := range t.stats {
		all = append(all, *s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Operation < all[j].Operation })
	return all
}

func (t *Tracker) Reset() {
	if t == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats = make(map[string]*Stats)
}
