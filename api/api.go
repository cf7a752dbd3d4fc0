// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api serves the committed state of the ledger over read-only HTTP.
package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/stakepool/api/holdings"
	"github.com/vechain/stakepool/api/pools"
	"github.com/vechain/stakepool/api/positions"
	"github.com/vechain/stakepool/host"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/metrics"
	"github.com/vechain/stakepool/staking"
	"github.com/vechain/stakepool/token"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	EnableReqLogger bool
	EnableMetrics   bool
	// Clock is used to advance accumulators to the time of the request.
	// Nil means host.SystemClock.
	Clock host.Clock
}

// New return api router
func New(
	ledger *host.Ledger,
	processor *staking.Processor,
	tokens *token.Service,
	opts Options,
) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	pools.New(ledger, processor, opts.Clock).
		Mount(router, "/pools")
	positions.New(ledger, processor).
		Mount(router, "/positions")
	holdings.New(ledger, tokens).
		Mount(router, "/holdings")

	if opts.EnableMetrics {
		if h := metrics.HTTPHandler(); h != nil {
			router.Path("/metrics").Methods(http.MethodGet).Handler(h)
		}
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = requestLogger(handler, logger)
	}

	return handler.ServeHTTP
}
