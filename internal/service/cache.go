package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"vetclinic-service/internal/cache"
	"vetclinic-service/internal/domain"
)

// Cache failures degrade to a miss: the store remains the source of truth
// and a broken cache must never fail a read path.

func cacheLookup[T any](ctx context.Context, c cache.Cache, log *zap.Logger, namespace, key string) (T, bool) {
	var v T
	found, err := c.Get(ctx, namespace, key, &v)
	if err != nil {
		log.Warn("cache read failed",
			zap.String("namespace", namespace), zap.String("key", key), zap.Error(err))
		return v, false
	}
	return v, found
}

func cacheStore(ctx context.Context, c cache.Cache, log *zap.Logger, namespace, key string, value any) {
	if err := c.Set(ctx, namespace, key, value); err != nil {
		log.Warn("cache write failed",
			zap.String("namespace", namespace), zap.String("key", key), zap.Error(err))
	}
}

func cacheEvictAll(ctx context.Context, c cache.Cache, log *zap.Logger, namespace string) {
	if err := c.EvictAll(ctx, namespace); err != nil {
		log.Warn("cache eviction failed", zap.String("namespace", namespace), zap.Error(err))
	}
}

func idKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

func pageKey(req domain.PageRequest) string {
	req = req.Normalize()
	return fmt.Sprintf("p%d:s%d:%s", req.Page, req.Size, req.Sort)
}
