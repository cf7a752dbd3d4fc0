// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulatorDelta(t *testing.T) {
	e := NewEngine(0, Checkpoint)
	assert.Equal(t, DefaultRewardRate, e.RewardRate)

	tests := []struct {
		name    string
		supply  uint64
		elapsed int64
		want    uint64
	}{
		{"scenario", 1000, 10, 1},
		{"truncates", 1000, 9, 0},
		{"empty pool", 0, 10, 0},
		{"no time", 1000, 0, 0},
		{"clock went back", 1000, -5, 0},
		{"small supply", 3, 1, 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.AccumulatorDelta(tt.supply, tt.elapsed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := NewEngine(math.MaxUint64, Checkpoint).AccumulatorDelta(1, 2)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestEarned(t *testing.T) {
	earned, err := Earned(500, 1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), earned)

	earned, err = Earned(500, 3, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(1007), earned)

	_, err = Earned(1, 1, 2, 0)
	assert.ErrorIs(t, err, ErrUnderflow)
	_, err = Earned(math.MaxUint64, 2, 0, 0)
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = Earned(1, 1, 0, math.MaxUint64)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestSettleScenario(t *testing.T) {
	for _, mode := range []AccrualMode{Checkpoint, Lifetime} {
		t.Run(mode.String(), func(t *testing.T) {
			e := NewEngine(100, mode)
			pool := &PoolLedger{TotalSupply: 1000, LastUpdateTimestamp: 100}
			pos := &UserPosition{Balance: 500}

			require.NoError(t, e.Settle(pool, pos, 110))
			assert.Equal(t, uint64(1), pool.RewardPerTokenStored)
			assert.Equal(t, int64(110), pool.LastUpdateTimestamp)
			assert.Equal(t, uint64(500), pos.Rewards)

			// settling again at the same time
			require.NoError(t, e.Settle(pool, pos, 110))
			if mode == Checkpoint {
				assert.Equal(t, uint64(1), pos.RewardPerTokenPaid)
				assert.Equal(t, uint64(500), pos.Rewards)
			} else {
				assert.Equal(t, uint64(0), pos.RewardPerTokenPaid)
				assert.Equal(t, uint64(1000), pos.Rewards)
			}
		})
	}
}

func TestSettleEmptyPool(t *testing.T) {
	pool := PoolLedger{RewardPerTokenStored: 7, LastUpdateTimestamp: 100}

	rpt, err := NewEngine(0, Checkpoint).RewardPerToken(&pool, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), rpt)

	rpt, err = NewEngine(0, Lifetime).RewardPerToken(&pool, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), rpt)
}

func TestSettleIsAtomic(t *testing.T) {
	e := NewEngine(0, Checkpoint)
	pool := &PoolLedger{TotalSupply: 10, RewardPerTokenStored: 1, LastUpdateTimestamp: 100}
	pos := &UserPosition{Balance: 10, RewardPerTokenPaid: 50, Rewards: 3}
	poolBefore, posBefore := *pool, *pos

	// nothing elapsed, so the accumulator stays below what was paid
	assert.ErrorIs(t, e.Settle(pool, pos, 100), ErrUnderflow)
	assert.Equal(t, poolBefore, *pool)
	assert.Equal(t, posBefore, *pos)

	// the pool advanced, then the position overflows
	pos.RewardPerTokenPaid, pos.Balance = 0, math.MaxUint64
	posBefore = *pos
	assert.ErrorIs(t, e.Settle(pool, pos, 110), ErrOverflow)
	assert.Equal(t, poolBefore, *pool)
	assert.Equal(t, posBefore, *pos)
}

func TestPending(t *testing.T) {
	e := NewEngine(0, Checkpoint)
	pool := PoolLedger{TotalSupply: 1000, LastUpdateTimestamp: 0}
	pos := UserPosition{Balance: 500, Rewards: 20}

	pending, err := e.Pending(pool, pos, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(520), pending)
	assert.Equal(t, uint64(0), pool.RewardPerTokenStored)
}

func TestParseAccrualMode(t *testing.T) {
	for _, m := range []AccrualMode{Checkpoint, Lifetime} {
		parsed, err := ParseAccrualMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	m, err := ParseAccrualMode("")
	require.NoError(t, err)
	assert.Equal(t, Checkpoint, m)

	_, err = ParseAccrualMode("linear")
	assert.Error(t, err)
	assert.Equal(t, "AccrualMode(9)", AccrualMode(9).String())
}
