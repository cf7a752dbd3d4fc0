// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb implements kv.Store on goleveldb.
package lvldb

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/vechain/stakepool/kv"
)

var _ kv.Store = (*LevelDB)(nil)

// Options tunes the database. Zero values fall back to 16.
type Options struct {
	// CacheSize is the memory budget in MiB, split between block cache and
	// write buffers.
	CacheSize              int `yaml:"cache-size"`
	OpenFilesCacheCapacity int `yaml:"open-files-cache-capacity"`
}

var (
	syncOpt = opt.WriteOptions{Sync: true}
	readOpt = opt.ReadOptions{}
)

// LevelDB is a kv.Store on goleveldb.
type LevelDB struct {
	db  *leveldb.DB
	stg storage.Storage
}

// New opens the database at path, creating it if needed.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "open storage at [%v]", path)
	}
	return open(stg, opts)
}

// NewMem creates an in-memory database for tests.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	cacheSize := max(opts.CacheSize, 16)
	openFiles := max(opts.OpenFilesCacheCapacity, 16)

	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: openFiles,
		BlockCacheCapacity:     cacheSize / 2 * opt.MiB,
		WriteBuffer:            cacheSize / 4 * opt.MiB, // Two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		stg.Close()
		return nil, pkgerrors.Wrap(err, "open level db")
	}
	return &LevelDB{db: db, stg: stg}, nil
}

// IsNotFound reports whether err is the not found error of Get.
func (ldb *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

// Get returns the value of key.
func (ldb *LevelDB) Get(key []byte) ([]byte, error) {
	return ldb.db.Get(key, &readOpt)
}

// NewBatch starts a batch. Its Write is synced to disk.
func (ldb *LevelDB) NewBatch() kv.Batch {
	return &batch{ldb.db, &leveldb.Batch{}}
}

// Stats reports leveldb internals for logging.
func (ldb *LevelDB) Stats() (*leveldb.DBStats, error) {
	var stats leveldb.DBStats
	if err := ldb.db.Stats(&stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Close releases the database and its file lock. Later operations fail.
func (ldb *LevelDB) Close() error {
	err := ldb.db.Close()
	// leveldb.Open leaves the storage to its caller
	if serr := ldb.stg.Close(); err == nil {
		err = serr
	}
	return err
}

type batch struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

// Put queues a put. leveldb.Batch copies key and value.
func (b *batch) Put(key, value []byte) error {
	b.batch.Put(key, value)
	return nil
}

func (b *batch) Len() int {
	return b.batch.Len()
}

func (b *batch) Write() error {
	return b.db.Write(b.batch, &syncOpt)
}
