// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
)

// DefaultRewardRate is the reward emitted per second, shared by all stake in a pool.
const DefaultRewardRate = uint64(100)

// AccrualMode selects how settlements account for earlier settlements.
type AccrualMode uint8

const (
	// Checkpoint pays each settlement only the accumulator growth since the
	// depositor's previous settlement, and keeps the stored accumulator while
	// the pool is empty.
	Checkpoint AccrualMode = iota
	// Lifetime never advances a depositor's paid accumulator, so every
	// settlement pays the whole accumulator times the current balance again,
	// and an empty pool reports a zero accumulator.
	Lifetime
)

func (m AccrualMode) String() string {
	switch m {
	case Checkpoint:
		return "checkpoint"
	case Lifetime:
		return "lifetime"
	default:
		return fmt.Sprintf("AccrualMode(%d)", uint8(m))
	}
}

// ParseAccrualMode parses the String form of a mode.
func ParseAccrualMode(s string) (AccrualMode, error) {
	switch s {
	case "", "checkpoint":
		return Checkpoint, nil
	case "lifetime":
		return Lifetime, nil
	}
	return 0, errors.Errorf("unknown accrual mode %q", s)
}

// Engine computes reward accrual. It is pure: it only touches the records it
// is given.
type Engine struct {
	RewardRate uint64
	Mode       AccrualMode
}

// NewEngine creates an engine. A zero rate means DefaultRewardRate.
func NewEngine(rewardRate uint64, mode AccrualMode) Engine {
	if rewardRate == 0 {
		rewardRate = DefaultRewardRate
	}
	return Engine{RewardRate: rewardRate, Mode: mode}
}

// AccumulatorDelta is the accumulator growth over elapsed seconds:
// elapsed*rate/totalSupply, truncated. It is zero for an empty pool or a
// non-positive interval.
func (e Engine) AccumulatorDelta(totalSupply uint64, elapsed int64) (uint64, error) {
	if totalSupply == 0 || elapsed <= 0 {
		return 0, nil
	}
	emitted, overflow := math.SafeMul(uint64(elapsed), e.RewardRate)
	if overflow {
		return 0, errors.WithMessagef(ErrOverflow, "%d seconds at rate %d", elapsed, e.RewardRate)
	}
	return emitted / totalSupply, nil
}

// RewardPerToken is the pool accumulator advanced to now.
func (e Engine) RewardPerToken(pool *PoolLedger, now int64) (uint64, error) {
	if pool.TotalSupply == 0 {
		if e.Mode == Lifetime {
			return 0, nil
		}
		return pool.RewardPerTokenStored, nil
	}
	delta, err := e.AccumulatorDelta(pool.TotalSupply, now-pool.LastUpdateTimestamp)
	if err != nil {
		return 0, err
	}
	rpt, overflow := math.SafeAdd(pool.RewardPerTokenStored, delta)
	if overflow {
		return 0, errors.WithMessage(ErrOverflow, "reward per token")
	}
	return rpt, nil
}

// Earned is balance*(rptNow-rptPaid)+accrued.
func Earned(balance, rptNow, rptPaid, accrued uint64) (uint64, error) {
	diff, underflow := math.SafeSub(rptNow, rptPaid)
	if underflow {
		return 0, errors.WithMessagef(ErrUnderflow, "reward per token %d below paid %d", rptNow, rptPaid)
	}
	owed, overflow := math.SafeMul(balance, diff)
	if overflow {
		return 0, errors.WithMessage(ErrOverflow, "earned")
	}
	total, overflow := math.SafeAdd(owed, accrued)
	if overflow {
		return 0, errors.WithMessage(ErrOverflow, "earned")
	}
	return total, nil
}

// Settle checkpoints the pool accumulator at now and credits the position with
// what it earned. Neither record changes on error.
func (e Engine) Settle(pool *PoolLedger, pos *UserPosition, now int64) error {
	rpt, err := e.RewardPerToken(pool, now)
	if err != nil {
		return err
	}
	earned, err := Earned(pos.Balance, rpt, pos.RewardPerTokenPaid, pos.Rewards)
	if err != nil {
		return err
	}

	pool.RewardPerTokenStored = rpt
	pool.LastUpdateTimestamp = now
	pos.Rewards = earned
	if e.Mode == Checkpoint {
		pos.RewardPerTokenPaid = rpt
	}
	return nil
}

// Pending is what a settlement at now would leave in the position's rewards.
func (e Engine) Pending(pool PoolLedger, pos UserPosition, now int64) (uint64, error) {
	if err := e.Settle(&pool, &pos, now); err != nil {
		return 0, err
	}
	return pos.Rewards, nil
}
