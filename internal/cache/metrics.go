package cache

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

type instrumentedCache struct {
	inner  Cache
	hits   *prometheus.CounterVec
	misses *prometheus.CounterVec
}

// WithMetrics decorates a Cache with per-namespace hit/miss counters.
func WithMetrics(inner Cache, hits, misses *prometheus.CounterVec) Cache {
	return &instrumentedCache{inner: inner, hits: hits, misses: misses}
}

func (c *instrumentedCache) Get(ctx context.Context, namespace, key string, dest any) (bool, error) {
	found, err := c.inner.Get(ctx, namespace, key, dest)
	if err == nil {
		if found {
			c.hits.WithLabelValues(namespace).Inc()
		} else {
			c.misses.WithLabelValues(namespace).Inc()
		}
	}
	return found, err
}

func (c *instrumentedCache) Set(ctx context.Context, namespace, key string, value any) error {
	return c.inner.Set(ctx, namespace, key, value)
}

func (c *instrumentedCache) EvictAll(ctx context.Context, namespace string) error {
	return c.inner.EvictAll(ctx, namespace)
}
