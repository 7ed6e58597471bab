package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restaurant-service/internal/util"

	"go.uber.org/zap"
)

// Collection persists one logical list as a single snapshot
type Collection[T any] struct {
	kv       KV
	key      string
	defaults func() []T
	logger   *zap.Logger
}

// NewCollection binds a collection to key. defaults may be nil, meaning an
// empty list.
func NewCollection[T any](kv KV, key string, defaults func() []T) *Collection[T] {
	return &Collection[T]{
		kv:       kv,
		key:      key,
		defaults: defaults,
		logger:   util.GetLogger(),
	}
}

// Key returns the snapshot key
func (c *Collection[T]) Key() string {
	return c.key
}

// LoadAll reads the snapshot. A missing snapshot is seeded with the defaults;
// a snapshot that fails to decode is replaced by the defaults in memory only,
// so the stored bytes remain available for inspection.
func (c *Collection[T]) LoadAll(ctx context.Context) ([]T, error) {
	raw, ok, err := c.kv.Load(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", c.key, err)
	}

	if !ok {
		items := c.defaultItems()
		if len(items) > 0 {
			if err := c.SaveAll(ctx, items); err != nil {
				return nil, err
			}
		}
		return items, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		util.SnapshotLoadFailuresTotal.WithLabelValues(c.key).Inc()
		c.logger.Warn("Corrupt snapshot, falling back to defaults",
			zap.String("collection", c.key),
			zap.Error(err))
		return c.defaultItems(), nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveAll writes the full list as the new snapshot
func (c *Collection[T]) SaveAll(ctx context.Context, items []T) error {
	start := time.Now()
	defer func() {
		util.SnapshotSaveLatency.WithLabelValues(c.key).Observe(time.Since(start).Seconds())
	}()

	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", c.key, err)
	}
	if err := c.kv.Save(ctx, c.key, raw); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}
	return nil
}

func (c *Collection[T]) defaultItems() []T {
	if c.defaults == nil {
		return []T{}
	}
	return c.defaults()
}
