// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics exposes process wide meters. Meters are declared at package
// level with NewCounter/NewHistogram and resolved on first use, so a binary
// decides between the no-op backend and prometheus before anything is recorded.
package metrics

import (
	"net/http"
	"sync"
)

// Labels maps label names to values of one observation.
type Labels map[string]string

// Counter is a monotonically increasing labelled value.
type Counter interface {
	Add(n uint64, labels Labels)
}

// Histogram aggregates labelled observations into buckets.
type Histogram interface {
	Observe(v int64, labels Labels)
}

// Desc names a meter and its label set.
type Desc struct {
	Name   string
	Help   string
	Labels []string
}

type backend interface {
	counter(d Desc) Counter
	histogram(d Desc, buckets []int64) Histogram
	handler() http.Handler
}

var current backend = noop{}

// HTTPHandler serves the scrape endpoint, nil while metrics are disabled.
func HTTPHandler() http.Handler {
	return current.handler()
}

// LatencyBuckets are the api latency buckets, in milliseconds.
var LatencyBuckets = []int64{
	0, 1, 2, 5, 10, 20, 30, 50, 75, 100,
	150, 200, 300, 400, 500, 750, 1000,
	1500, 2000, 3000, 5000, 10000,
}

func lazy[T any](resolve func() T) func() T {
	var (
		once sync.Once
		v    T
	)
	return func() T {
		once.Do(func() { v = resolve() })
		return v
	}
}

// NewCounter declares a counter.
func NewCounter(name, help string, labels ...string) func() Counter {
	d := Desc{Name: name, Help: help, Labels: labels}
	return lazy(func() Counter { return current.counter(d) })
}

// NewHistogram declares a histogram with the given upper bounds.
func NewHistogram(name, help string, buckets []int64, labels ...string) func() Histogram {
	d := Desc{Name: name, Help: help, Labels: labels}
	return lazy(func() Histogram { return current.histogram(d, buckets) })
}
