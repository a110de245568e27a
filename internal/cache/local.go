package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var cacheTracer = otel.Tracer("github.com/chris-regnier/namecheck/internal/cache")

var _ Manager = (*LocalCache)(nil)

// LocalCache keeps one JSON file per entry under dir, sharded by the first
// two characters of the key hash: dir/ab/abcd....json.
//
// Unreadable or mismatching entries are reported as misses and removed, so a
// damaged cache directory only costs a re-analysis.
type LocalCache struct {
	dir string
}

func NewLocalCache(dir string) *LocalCache {
	return &LocalCache{dir: dir}
}

func (c *LocalCache) entryPath(hash string) string {
	return filepath.Join(c.dir, hash[:2], hash+".json")
}

func (c *LocalCache) Get(ctx context.Context, key Key) (*Entry, error) {
	hash := key.Hash()
	ctx, span := cacheTracer.Start(ctx, "local cache get",
		trace.WithAttributes(attribute.String("namecheck.cache.key", hash)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, spanError(span, err)
	}

	path := c.entryPath(hash)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		span.SetAttributes(attribute.Bool("namecheck.cache.hit", false))
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, spanError(span, err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Key.Hash() != hash {
		slog.Debug("discarding unusable cache entry", "path", path, "error", err)
		_ = os.Remove(path)
		span.SetAttributes(attribute.Bool("namecheck.cache.hit", false))
		return nil, ErrCacheMiss
	}

	span.SetAttributes(attribute.Bool("namecheck.cache.hit", true))
	return &entry, nil
}

// Put writes the entry through a temporary file and a rename, so concurrent
// writers of the same key never leave a partial file behind.
func (c *LocalCache) Put(ctx context.Context, entry *Entry) error {
	hash := entry.Key.Hash()
	_, span := cacheTracer.Start(ctx, "local cache put",
		trace.WithAttributes(attribute.String("namecheck.cache.key", hash)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return spanError(span, err)
	}

	path := c.entryPath(hash)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return spanError(span, fmt.Errorf("creating cache directory: %w", err))
	}

	entry.Timestamp = time.Now().Unix()
	data, err := json.Marshal(entry)
	if err != nil {
		return spanError(span, fmt.Errorf("encoding cache entry: %w", err))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), hash+".*.tmp")
	if err != nil {
		return spanError(span, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return spanError(span, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return spanError(span, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return spanError(span, err)
	}
	return nil
}

func (c *LocalCache) Delete(ctx context.Context, key Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(c.entryPath(key.Hash()))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
