// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "github.com/ethereum/go-ethereum/common/math"

func addU64(a, b uint64) (uint64, bool) { return math.SafeAdd(a, b) }

func subU64(a, b uint64) (uint64, bool) { return math.SafeSub(a, b) }
