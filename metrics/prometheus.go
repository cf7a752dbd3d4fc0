// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vechain/stakepool/log"
)

const namespace = "stakepool"

var logger = log.WithContext("pkg", "metrics")

// EnablePrometheus switches the process to a prometheus registry. Meters resolved
// before the switch stay no-op. Calling it again keeps the existing registry.
func EnablePrometheus() {
	if _, ok := current.(*promBackend); !ok {
		current = newPromBackend()
	}
}

// Gatherer returns the prometheus registry, nil while metrics are disabled.
func Gatherer() prometheus.Gatherer {
	if b, ok := current.(*promBackend); ok {
		return b.registry
	}
	return nil
}

type promBackend struct {
	registry *prometheus.Registry
	mu       sync.Mutex
	meters   map[string]any
}

func newPromBackend() *promBackend {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
	)
	return &promBackend{registry: registry, meters: make(map[string]any)}
}

// resolve returns the meter registered under d.Name, creating it on first use.
// A name reused for another kind of meter resolves to no-op.
func resolve[T any](b *promBackend, d Desc, create func() (prometheus.Collector, T)) T {
	b.mu.Lock()
	defer b.mu.Unlock()

	if m, ok := b.meters[d.Name]; ok {
		if t, ok := m.(T); ok {
			return t
		}
		logger.Warn("metric redeclared as another kind", "name", d.Name)
		return any(noop{}).(T)
	}
	collector, m := create()
	if err := b.registry.Register(collector); err != nil {
		logger.Warn("unable to register metric", "name", d.Name, "err", err)
	}
	b.meters[d.Name] = m
	return m
}

func (b *promBackend) counter(d Desc) Counter {
	return resolve(b, d, func() (prometheus.Collector, Counter) {
		vec := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      d.Name,
			Help:      d.Help,
		}, d.Labels)
		return vec, promCounter{vec}
	})
}

func (b *promBackend) histogram(d Desc, buckets []int64) Histogram {
	return resolve(b, d, func() (prometheus.Collector, Histogram) {
		bounds := make([]float64, 0, len(buckets))
		for _, v := range buckets {
			bounds = append(bounds, float64(v))
		}
		vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      d.Name,
			Help:      d.Help,
			Buckets:   bounds,
		}, d.Labels)
		return vec, promHistogram{vec}
	})
}

func (b *promBackend) handler() http.Handler {
	return promhttp.HandlerFor(b.registry, promhttp.HandlerOpts{})
}

type promCounter struct{ vec *prometheus.CounterVec }

func (c promCounter) Add(n uint64, labels Labels) {
	c.vec.With(prometheus.Labels(labels)).Add(float64(n))
}

type promHistogram struct{ vec *prometheus.HistogramVec }

func (h promHistogram) Observe(v int64, labels Labels) {
	h.vec.With(prometheus.Labels(labels)).Observe(float64(v))
}
