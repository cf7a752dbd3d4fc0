// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "net/http"

// noop discards everything. It is the backend until prometheus is enabled.
type noop struct{}

func (noop) counter(Desc) Counter              { return noop{} }
func (noop) histogram(Desc, []int64) Histogram { return noop{} }
func (noop) handler() http.Handler             { return nil }
func (noop) Add(uint64, Labels)                {}
func (noop) Observe(int64, Labels)             {}
