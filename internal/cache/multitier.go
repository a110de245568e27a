package cache

import (
	"context"
	"log/slog"
)

// MultiTierCache checks a fast in-process tier before a persistent one and
// warms the fast tier on persistent hits.
type MultiTierCache struct {
	memory     Manager
	persistent Manager // may be nil
}

// NewMultiTierCache creates a new multi-tier cache.
// If persistent is nil, the cache operates in memory-only mode.
func NewMultiTierCache(memory, persistent Manager) *MultiTierCache {
	return &MultiTierCache{memory: memory, persistent: persistent}
}

func (c *MultiTierCache) Get(ctx context.Context, key Key) (*Entry, error) {
	entry, err := c.memory.Get(ctx, key)
	if err == nil {
		return entry, nil
	}
	if c.persistent == nil {
		return nil, err
	}

	entry, err = c.persistent.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if putErr := c.memory.Put(ctx, entry); putErr != nil {
		slog.Debug("failed to warm memory cache", "error", putErr)
	}
	return entry, nil
}

func (c *MultiTierCache) Put(ctx context.Context, entry *Entry) error {
	if err := c.memory.Put(ctx, entry); err != nil {
		return err
	}
	if c.persistent != nil {
		if err := c.persistent.Put(ctx, entry); err != nil {
			// memory write succeeded; the run can continue without persistence
			slog.Warn("failed to write cache entry", "error", err)
		}
	}
	return nil
}

func (c *MultiTierCache) Delete(ctx context.Context, key Key) error {
	if err := c.memory.Delete(ctx, key); err != nil {
		return err
	}
	if c.persistent != nil {
		return c.persistent.Delete(ctx, key)
	}
	return nil
}

// HasPersistent returns true if a persistent tier is configured
func (c *MultiTierCache) HasPersistent() bool {
	return c.persistent != nil
}
