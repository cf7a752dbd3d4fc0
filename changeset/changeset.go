// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package changeset buffers writes over a read-only source until the owner
// commits them, latest value per key.
package changeset

// Source reads values the set was opened over.
type Source[K comparable, V any] func(key K) (value V, exist bool, err error)

// Set is not safe for concurrent use.
type Set[K comparable, V any] struct {
	src     Source[K, V]
	current map[K]V
	order   []K
}

func New[K comparable, V any](src Source[K, V]) *Set[K, V] {
	return &Set[K, V]{src: src, current: make(map[K]V)}
}

// Get returns the buffered value of key, falling back to the source.
func (s *Set[K, V]) Get(key K) (V, bool, error) {
	if v, ok := s.current[key]; ok {
		return v, true, nil
	}
	return s.src(key)
}

// Put buffers a write.
func (s *Set[K, V]) Put(key K, value V) {
	if _, ok := s.current[key]; !ok {
		s.order = append(s.order, key)
	}
	s.current[key] = value
}

// Len returns the number of keys written.
func (s *Set[K, V]) Len() int {
	return len(s.order)
}

// Changes calls fn with the latest value of every written key, in the order
// keys were first written. It stops when fn returns false.
func (s *Set[K, V]) Changes(fn func(key K, value V) bool) {
	for _, k := range s.order {
		if !fn(k, s.current[k]) {
			return
		}
	}
}
