// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/ident"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/staking"
)

func do(t *testing.T, h http.Handler, method, path, body string, out any) int {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	if out != nil {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec.Code
}

func TestLogLevel(t *testing.T) {
	var lvl slog.LevelVar
	lvl.Set(log.LevelInfo)
	h := New(&lvl, staking.NewAddresses(ident.NameToAddress("program"), 8))

	var got LogLevel
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/admin/loglevel", "", &got))
	assert.Equal(t, "info", got.Level)

	for _, name := range []string{"trace", "debug", "warn", "error", "crit"} {
		require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/admin/loglevel", `{"level":"`+name+`"}`, &got))
		assert.Equal(t, name, got.Level)
		assert.Equal(t, name, log.LevelString(lvl.Level()))
	}

	tests := []struct {
		name string
		body string
	}{
		{"unknown level", `{"level":"verbose"}`},
		{"unknown field", `{"verbosity":"debug"}`},
		{"malformed", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body utils.ErrorBody
			assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/admin/loglevel", tt.body, &body))
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, "crit", log.LevelString(lvl.Level()))
		})
	}

	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodDelete, "/admin/loglevel", "", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodPost, "/admin/cache", "", nil))
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/admin/unknown", "", nil))
}

func TestLogLevelReachesLogger(t *testing.T) {
	var (
		lvl slog.LevelVar
		buf bytes.Buffer
	)
	lvl.Set(log.LevelInfo)
	prev := log.Root()
	t.Cleanup(func() { log.SetDefault(prev) })
	log.SetDefault(log.NewLogger(log.NewHandler(&buf, &lvl, false, false)))

	pkgLogger := log.WithContext("pkg", "staking")
	pkgLogger.Debug("settled early")
	assert.NotContains(t, buf.String(), "settled early")

	h := New(&lvl, staking.NewAddresses(ident.NameToAddress("program"), 8))
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/admin/loglevel", `{"level":"debug"}`, nil))

	pkgLogger.Debug("settled late")
	assert.Contains(t, buf.String(), "settled late")
}

func TestCacheStats(t *testing.T) {
	addrs := staking.NewAddresses(ident.NameToAddress("program"), 8)
	h := New(&slog.LevelVar{}, addrs)

	mint := ident.NameToAddress("mint")
	_, err := addrs.StakingCustody(mint)
	require.NoError(t, err)
	_, err = addrs.StakingCustody(mint)
	require.NoError(t, err)

	var stats CacheStats
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/admin/cache", "", &stats))
	assert.Equal(t, CacheStats{Hits: 1, Misses: 1}, stats)
}
