package pipeline

import (
	"fmt"
	"sort"
	"sync"

	"imgtransform/internal/logger"
)

type Factory func(log logger.Logger) (Engine, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes an engine available to New. It panics on duplicates.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("pipeline: engine %q registered twice", name))
	}
	registry[name] = factory
}

func New(name string, log logger.Logger) (Engine, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown engine %q (available: %v)", name, Engines())
	}
	return factory(log)
}

func Engines() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
