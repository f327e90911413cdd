// Package cache memoizes transform output across dev-server requests.
// Entries are keyed by a hash of the source bytes, so a re-saved but
// unchanged file is a hit and an edited file misses without any explicit
// invalidation.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ggdaltoso/aleph.js/core/logger"
)

const defaultMaxEntries = 1024

type Entry struct {
	Code      string
	CreatedAt time.Time
}

type Metrics struct {
	Hits    int64
	Misses  int64
	Entries int
}

type TransformCache struct {
	entries *lru.Cache[string, *Entry]
	mu      sync.Mutex
	hits    int64
	misses  int64
}

var (
	globalCache *TransformCache
	cacheOnce   sync.Once
)

func GetCache() *TransformCache {
	cacheOnce.Do(func() {
		globalCache = NewTransformCache(defaultMaxEntries)
	})
	return globalCache
}

func NewTransformCache(maxEntries int) *TransformCache {
	entries, err := lru.New[string, *Entry](maxEntries)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	logger.Debug("Created transform cache with MaxEntries=%d", maxEntries)
	return &TransformCache{entries: entries}
}

// Key derives the cache key for a source file's content.
func Key(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}

func (tc *TransformCache) Get(key string) (string, bool) {
	entry, ok := tc.entries.Get(key)
	tc.mu.Lock()
	if ok {
		tc.hits++
	} else {
		tc.misses++
	}
	tc.mu.Unlock()
	if !ok {
		logger.Debug("Cache miss for %s", shortKey(key))
		return "", false
	}
	logger.Debug("Cache hit for %s", shortKey(key))
	return entry.Code, true
}

func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}

func (tc *TransformCache) Set(key, code string) {
	tc.entries.Add(key, &Entry{Code: code, CreatedAt: time.Now()})
}

func (tc *TransformCache) Clear() {
	tc.entries.Purge()
	logger.Debug("Cleared transform cache")
}

func (tc *TransformCache) GetMetrics() Metrics {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return Metrics{
		Hits:    tc.hits,
		Misses:  tc.misses,
		Entries: tc.entries.Len(),
	}
}
