// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cache provides a typed LRU cache with hit/miss accounting.
package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// LRU is safe for concurrent use. Concurrent misses on one key may load it
// more than once.
type LRU[K comparable, V any] struct {
	entries      *lru.Cache
	hits, misses atomic.Int64
}

// NewLRU creates a cache holding at most size entries. size must be positive.
func NewLRU[K comparable, V any](size int) (*LRU[K, V], error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{entries: entries}, nil
}

// GetOrLoad returns the cached value of key, loading and caching it on a
// miss. Failed loads are not cached.
func (c *LRU[K, V]) GetOrLoad(key K, load func(K) (V, error)) (V, error) {
	if v, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return v.(V), nil
	}
	c.misses.Add(1)
	v, err := load(key)
	if err != nil {
		return v, err
	}
	c.entries.Add(key, v)
	return v, nil
}

func (c *LRU[K, V]) Contains(key K) bool { return c.entries.Contains(key) }
func (c *LRU[K, V]) Len() int            { return c.entries.Len() }

// Stats returns the hit and miss counts since creation.
func (c *LRU[K, V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
