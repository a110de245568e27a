// Package cache stores per-file check results keyed by file content and the
// settings that produced them, so unchanged files are not re-analyzed.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/chris-regnier/namecheck/internal/astcheck"
)

// ErrCacheMiss is returned when no entry exists for a key.
var ErrCacheMiss = errors.New("cache miss")

// Key identifies the result of running a set of checks over one file.
type Key struct {
	FileHash      string   `json:"file_hash"`
	MinNameLength int      `json:"min_name_length"`
	Checks        []string `json:"checks"`
	ToolVersion   string   `json:"tool_version"`
}

// Hash returns a deterministic digest of k.
func (k Key) Hash() string {
	b, err := json.Marshal(k)
	if err != nil {
		// Key only holds strings and ints
		panic("failed to marshal cache key: " + err.Error())
	}
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// HashContent returns the sha256 hex digest of a file's content.
func HashContent(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}

// Entry is a cached check result for one file.
type Entry struct {
	Key       Key              `json:"key"`
	Matches   []astcheck.Match `json:"matches"`
	Timestamp int64            `json:"timestamp"`
}

// Manager is implemented by every cache tier.
type Manager interface {
	Get(ctx context.Context, key Key) (*Entry, error)
	Put(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, key Key) error
}

var _ Manager = (*MemoryCache)(nil)

// MemoryCache is a thread-safe in-process cache with TTL and size bound.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	maxSize int
	ttl     time.Duration

	hits      int64
	misses    int64
	evictions int64
}

type memoryEntry struct {
	entry     *Entry
	createdAt time.Time
	expiresAt time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Option configures a MemoryCache
type Option func(*MemoryCache)

// WithMaxSize sets the maximum number of entries
func WithMaxSize(n int) Option {
	return func(c *MemoryCache) {
		c.maxSize = n
	}
}

// WithTTL sets the time-to-live for entries; zero disables expiry
func WithTTL(d time.Duration) Option {
	return func(c *MemoryCache) {
		c.ttl = d
	}
}

// NewMemoryCache creates a new in-memory cache with the given options
func NewMemoryCache(opts ...Option) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]*memoryEntry),
		maxSize: 1000,
		ttl:     time.Hour,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *MemoryCache) Get(ctx context.Context, key Key) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := key.Hash()
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[h]
	if !ok {
		c.misses++
		return nil, ErrCacheMiss
	}
	if e.expired(time.Now()) {
		delete(c.entries, h)
		c.misses++
		return nil, ErrCacheMiss
	}
	c.hits++
	return e.entry, nil
}

func (c *MemoryCache) Put(ctx context.Context, entry *Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	h := entry.Key.Hash()
	if _, exists := c.entries[h]; !exists && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	now := time.Now()
	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = now.Add(c.ttl)
	}
	c.entries[h] = &memoryEntry{entry: entry, createdAt: now, expiresAt: expiresAt}
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key.Hash())
	return nil
}

// Stats returns cache statistics
func (c *MemoryCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}

	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		HitRate:   hitRate,
		Size:      len(c.entries),
		MaxSize:   c.maxSize,
		Evictions: c.evictions,
	}
}

// Stats holds cache statistics
type Stats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	HitRate   float64 `json:"hit_rate"`
	Size      int     `json:"size"`
	MaxSize   int     `json:"max_size"`
	Evictions int64   `json:"evictions"`
}

// evictOldest removes the oldest entry (by creation time)
// Must be called with lock held
func (c *MemoryCache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, e := range c.entries {
		if oldestKey == "" || e.createdAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = e.createdAt
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
		c.evictions++
	}
}
