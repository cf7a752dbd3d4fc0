// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLRU(t *testing.T) {
	_, err := NewLRU[string, int](0)
	assert.Error(t, err)
}

func TestGetOrLoad(t *testing.T) {
	c, err := NewLRU[string, int](2)
	require.NoError(t, err)

	loads := 0
	load := func(key string) (int, error) {
		loads++
		return len(key), nil
	}

	v, err := c.GetOrLoad("abc", load)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = c.GetOrLoad("abc", load)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Equal(t, 1, loads)

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	c.GetOrLoad("d", load)
	c.GetOrLoad("ef", load)
	assert.False(t, c.Contains("abc"), "evicted")
	assert.Equal(t, 2, c.Len())

	boom := errors.New("boom")
	_, err = c.GetOrLoad("x", func(string) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Contains("x"))

	hits, misses = c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(4), misses)
}

func TestConcurrentGetOrLoad(t *testing.T) {
	c, err := NewLRU[int, string](64)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				v, err := c.GetOrLoad(i%16, func(k int) (string, error) {
					return strconv.Itoa(k), nil
				})
				assert.NoError(t, err)
				assert.Equal(t, strconv.Itoa(i%16), v)
			}
		}()
	}
	wg.Wait()

	hits, misses := c.Stats()
	assert.Equal(t, int64(800), hits+misses)
	assert.Equal(t, 16, c.Len())
}
