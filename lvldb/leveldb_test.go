// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/kv"
)

func TestBatch(t *testing.T) {
	disk, err := New(filepath.Join(t.TempDir(), "db"), Options{CacheSize: 32, OpenFilesCacheCapacity: 32})
	require.NoError(t, err)
	defer disk.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, db := range []*LevelDB{disk, mem} {
		_, err := db.Get([]byte("k"))
		assert.True(t, db.IsNotFound(err))

		batch := db.NewBatch()
		require.NoError(t, batch.Put([]byte("k"), []byte("v1")))
		require.NoError(t, batch.Put([]byte("k"), []byte("v2")))
		assert.Equal(t, 2, batch.Len())

		_, err = db.Get([]byte("k"))
		assert.True(t, db.IsNotFound(err), "nothing visible before Write")

		require.NoError(t, batch.Write())
		got, err := db.Get([]byte("k"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), got)

		stats, err := db.Stats()
		require.NoError(t, err)
		assert.NotNil(t, stats)
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db")

	db, err := New(path, Options{})
	require.NoError(t, err)
	batch := kv.Bucket("r").NewStore(db).NewBatch()
	require.NoError(t, batch.Put([]byte("k"), []byte("v")))
	require.NoError(t, batch.Write())
	require.NoError(t, db.Close())

	db, err = New(path, Options{})
	require.NoError(t, err)
	defer db.Close()

	got, err := kv.Bucket("r").NewStore(db).Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	_, err = db.Get([]byte("k"))
	assert.True(t, db.IsNotFound(err), "stored under the bucket prefix")
}

func TestCloseReleasesLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db")

	db, err := New(path, Options{})
	require.NoError(t, err)

	_, err = New(path, Options{})
	assert.Error(t, err, "locked by the open handle")

	require.NoError(t, db.Close())
	assert.Error(t, db.Close(), "already closed")

	for range 2 {
		db, err = New(path, Options{})
		require.NoError(t, err)
		require.NoError(t, db.Close())
	}
}
