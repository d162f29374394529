package llm

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores completions by key. Implementations must be safe for
// concurrent use; failures degrade to misses.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// CacheKey builds a deterministic key from the model and prompt.
func CacheKey(model, prompt string) string {
	hash := sha256.Sum256([]byte(model + "|" + prompt))
	return fmt.Sprintf("hrassist:llm:%x", hash[:16])
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is an in-process cache bounded to maxEntries.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	maxEntries int
	now        func() time.Time
}

func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries < 1 {
		maxEntries = 1000
	}
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return "", false
	}
	return e.value, true
}

func (m *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.evict(now)
	}
	m.entries[key] = memoryEntry{value: value, expiresAt: now.Add(ttl)}
}

// evict drops expired entries, or the entry closest to expiry when none
// have expired. Called with mu held.
func (m *MemoryCache) evict(now time.Time) {
	var oldestKey string
	var oldest time.Time
	removed := false
	for k, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, k)
			removed = true
			continue
		}
		if oldestKey == "" || e.expiresAt.Before(oldest) {
			oldestKey, oldest = k, e.expiresAt
		}
	}
	if !removed && oldestKey != "" {
		delete(m.entries, oldestKey)
	}
}

func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// TieredCache checks memory first, then Redis. Redis hits are copied back
// into memory.
type TieredCache struct {
	l1     *MemoryCache
	rdb    *redis.Client
	logger *slog.Logger
}

// NewTieredCache connects to redisURL when it is set. An unreachable Redis
// leaves the cache memory-only.
func NewTieredCache(ctx context.Context, redisURL string, maxEntries int, logger *slog.Logger) *TieredCache {
	c := &TieredCache{l1: NewMemoryCache(maxEntries), logger: logger}
	if redisURL == "" {
		return c
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn("cache: invalid redis URL, L2 disabled", "error", err)
		return c
	}
	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("cache: redis unreachable, L2 disabled", "error", err)
		rdb.Close()
		return c
	}
	logger.Info("cache: L2 redis connected", "addr", opts.Addr)
	c.rdb = rdb
	return c
}

func (c *TieredCache) Get(ctx context.Context, key string) (string, bool) {
	if v, ok := c.l1.Get(ctx, key); ok {
		return v, true
	}
	if c.rdb == nil {
		return "", false
	}

	v, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache: redis get failed", "error", err)
		}
		return "", false
	}
	ttl, err := c.rdb.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		ttl = time.Minute
	}
	c.l1.Set(ctx, key, v, ttl)
	return v, true
}

func (c *TieredCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	c.l1.Set(ctx, key, value, ttl)
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("cache: redis set failed", "error", err)
	}
}

func (c *TieredCache) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
