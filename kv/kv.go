// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the byte store the host ledger persists records in.
// Writes only go through batches, so a store never holds half a commit.
package kv

// Getter reads committed values.
type Getter interface {
	// Get fails with an error satisfying IsNotFound when key is absent.
	Get(key []byte) ([]byte, error)
	IsNotFound(err error) bool
}

// Batch collects puts and writes them atomically.
type Batch interface {
	Put(key, val []byte) error
	Len() int
	Write() error
}

// Store is a Getter written through batches.
type Store interface {
	Getter
	NewBatch() Batch
}

// Bucket is a key prefix partitioning a store.
type Bucket string

// Key returns the prefixed key in a new slice.
func (b Bucket) Key(key []byte) []byte {
	return append(append(make([]byte, 0, len(b)+len(key)), b...), key...)
}

// NewStore returns src seen through the bucket.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{bucket: b, src: src}
}

type bucketStore struct {
	bucket Bucket
	src    Store
}

func (s *bucketStore) Get(key []byte) ([]byte, error) { return s.src.Get(s.bucket.Key(key)) }
func (s *bucketStore) IsNotFound(err error) bool      { return s.src.IsNotFound(err) }
func (s *bucketStore) NewBatch() Batch                { return &bucketBatch{s.bucket, s.src.NewBatch()} }

type bucketBatch struct {
	bucket Bucket
	Batch
}

func (b *bucketBatch) Put(key, val []byte) error {
	return b.Batch.Put(b.bucket.Key(key), val)
}
