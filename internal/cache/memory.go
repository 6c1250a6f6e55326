package cache

import (
	"context"
	"sync"

	"github.com/goccy/go-json"
)

type memoryCache struct {
	mu         sync.RWMutex
	namespaces map[string]map[string][]byte
}

// NewMemory returns an in-process Cache. Values are stored as JSON so
// reads return copies, matching the redis backend's semantics.
func NewMemory() Cache {
	return &memoryCache{namespaces: make(map[string]map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, namespace, key string, dest any) (bool, error) {
	c.mu.RLock()
	data, ok := c.namespaces[namespace][key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, namespace, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ns, ok := c.namespaces[namespace]
	if !ok {
		ns = make(map[string][]byte)
		c.namespaces[namespace] = ns
	}
	ns[key] = data
	return nil
}

func (c *memoryCache) EvictAll(_ context.Context, namespace string) error {
	c.mu.Lock()
	delete(c.namespaces, namespace)
	c.mu.Unlock()
	return nil
}
