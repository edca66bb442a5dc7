package utils

import (
	"log"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

// FeedCache 本地 LRU 缓存，用于已审核通过的信息流页面
type FeedCache struct {
	lru *lru.Cache[string, cacheEntry]
}

var (
	cacheInstance *FeedCache
	cacheOnce     sync.Once
)

func GetCache() *FeedCache {
	cacheOnce.Do(func() {
		l, err := lru.New[string, cacheEntry](256)
		if err != nil {
			log.Fatalf("Failed to create LRU cache: %v", err)
		}
		cacheInstance = &FeedCache{lru: l}
	})
	return cacheInstance
}

func (c *FeedCache) Set(key string, data interface{}, ttl time.Duration) {
	c.lru.Add(key, cacheEntry{data: data, expiresAt: time.Now().Add(ttl)})
}

// Get returns nil when the key is absent or expired.
func (c *FeedCache) Get(key string) interface{} {
	entry, ok := c.lru.Get(key)
	if !ok {
		return nil
	}
	if time.Now().After(entry.expiresAt) {
		c.lru.Remove(key)
		return nil
	}
	return entry.data
}

func (c *FeedCache) Delete(key string) {
	c.lru.Remove(key)
}
