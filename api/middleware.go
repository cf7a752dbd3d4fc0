// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/metrics"
)

var (
	metricRequests = metrics.NewCounter("api_request_count", "api requests by route", "name", "code", "method")
	metricLatency  = metrics.NewHistogram("api_duration_ms", "api latency by route", metrics.LatencyBuckets, "name", "code", "method")
)

// statusWriter remembers the status code written through it.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// serve runs next and returns the status it answered with and how long it took.
func serve(next http.Handler, w http.ResponseWriter, r *http.Request) (int, time.Duration) {
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	start := time.Now()
	next.ServeHTTP(sw, r)
	return sw.status, time.Since(start)
}

// metricsMiddleware meters requests matched by a named route. Unnamed routes
// are not metered so that label cardinality stays bounded.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var name string
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}
		if name == "" {
			next.ServeHTTP(w, r)
			return
		}
		status, elapsed := serve(next, w, r)
		labels := metrics.Labels{"name": name, "code": strconv.Itoa(status), "method": r.Method}
		metricRequests().Add(1, labels)
		metricLatency().Observe(elapsed.Milliseconds(), labels)
	})
}

// requestLogger logs each request. Server errors are logged at warn level.
func requestLogger(next http.Handler, logger log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, elapsed := serve(next, w, r)
		logf := logger.Info
		if status >= http.StatusInternalServerError {
			logf = logger.Warn
		}
		logf("api request", "uri", r.URL.String(), "method", r.Method, "status", status, "elapsed", elapsed)
	})
}
