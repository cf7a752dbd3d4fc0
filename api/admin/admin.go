// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package admin serves operator endpoints on a separate listener: the runtime
// log level and derivation cache statistics.
package admin

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/staking"
)

var logger = log.WithContext("pkg", "admin")

type LogLevel struct {
	Level string `json:"level"`
}

type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

type admin struct {
	level *slog.LevelVar
	addrs staking.Addresses
}

// New returns the admin handler. level is the handler level installed by the
// binary, addrs the derivation service of the staking program.
func New(level *slog.LevelVar, addrs staking.Addresses) http.HandlerFunc {
	a := &admin{level: level, addrs: addrs}

	// routes sit on one router so a method mismatch answers 405
	router := mux.NewRouter()
	router.Path("/admin/loglevel").
		Methods(http.MethodGet).
		HandlerFunc(utils.WrapHandlerFunc(a.getLogLevel))
	router.Path("/admin/loglevel").
		Methods(http.MethodPost).
		HandlerFunc(utils.WrapHandlerFunc(a.setLogLevel))
	router.Path("/admin/cache").
		Methods(http.MethodGet).
		HandlerFunc(utils.WrapHandlerFunc(a.getCacheStats))

	return handlers.CompressHandler(router).ServeHTTP
}

func (a *admin) getLogLevel(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, &LogLevel{Level: log.LevelString(a.level.Level())})
}

func (a *admin) setLogLevel(w http.ResponseWriter, r *http.Request) error {
	var req LogLevel
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(err)
	}
	lvl, err := log.ParseLevel(req.Level)
	if err != nil {
		return utils.BadRequest(err)
	}
	prev := a.level.Level()
	a.level.Set(lvl)
	logger.Info("log level changed", "from", log.LevelString(prev), "to", log.LevelString(lvl))
	return utils.WriteJSON(w, &LogLevel{Level: log.LevelString(lvl)})
}

func (a *admin) getCacheStats(w http.ResponseWriter, _ *http.Request) error {
	hits, misses := a.addrs.CacheStats()
	return utils.WriteJSON(w, &CacheStats{Hits: hits, Misses: misses})
}
