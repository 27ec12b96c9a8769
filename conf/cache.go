package conf

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/zeebo/xxh3"
)

// Cache memoizes parse results by source content. Each source is parsed at
// most once per distinct set of options; every call receives its own deep
// copy of the result, which the caller owns exclusively. A Cache is safe for
// concurrent use. The zero value is ready to use.
type Cache struct {
	entries sync.Map // cacheKey -> *cacheEntry
	size    atomic.Int64
}

type cacheKey struct {
	hash     xxh3.Uint128
	maxDepth int
	source   string
}

type cacheEntry struct {
	once sync.Once
	cfg  *Config
	err  error
}

// Parse returns a copy of the Config parsed from src, parsing it only if an
// equal source has not been seen with the same options. Parse errors are
// cached too.
func (c *Cache) Parse(ctx context.Context, src string, opts ...Option) (*Config, error) {
	o := makeOptions(opts...)

	key := cacheKey{
		hash:     xxh3.HashString128(src),
		maxDepth: o.maxDepth,
		source:   o.source,
	}

	value, loaded := c.entries.LoadOrStore(key, new(cacheEntry))
	entry, _ := value.(*cacheEntry)

	if !loaded {
		c.size.Add(1)
	}

	entry.once.Do(func() {
		// Cancellation of one caller must not be cached for the others.
		entry.cfg, entry.err = ParseString(context.WithoutCancel(ctx), src, opts...)
	})

	o.logger.TraceContext(ctx, "parse cache",
		slog.Bool("hit", loaded),
		slog.String("key", strconv.FormatUint(key.hash.Lo, 36)))

	if entry.err != nil {
		return nil, entry.err
	}

	return entry.cfg.Clone(), nil
}

// ParseReader drains r and behaves like [Cache.Parse].
func (c *Cache) ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Config, error) {
	src, err := readAll(r)
	if err != nil {
		return nil, err
	}

	return c.Parse(ctx, src, opts...)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int { return int(c.size.Load()) }

// Reset discards all cached entries.
func (c *Cache) Reset() {
	c.entries.Range(func(key, _ any) bool {
		if _, ok := c.entries.LoadAndDelete(key); ok {
			c.size.Add(-1)
		}

		return true
	})
}
