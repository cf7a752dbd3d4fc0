// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"github.com/vechain/stakepool/ident"
	"github.com/vechain/stakepool/staking"
)

// Pool is a pool ledger with its derived addresses and the accumulator
// advanced to the time of the request.
type Pool struct {
	Address                 ident.Address `json:"address"`
	Admin                   ident.Address `json:"admin"`
	StakingAsset            ident.Address `json:"stakingAsset"`
	RewardAsset             ident.Address `json:"rewardAsset"`
	StakingCustodyAuthority ident.Address `json:"stakingCustodyAuthority"`
	RewardCustodyAuthority  ident.Address `json:"rewardCustodyAuthority"`
	TotalSupply             uint64        `json:"totalSupply"`
	RewardPerTokenStored    uint64        `json:"rewardPerTokenStored"`
	RewardPerToken          uint64        `json:"rewardPerToken"`
	LastUpdateTimestamp     int64         `json:"lastUpdateTimestamp"`
}

// Position is a depositor's position in a pool.
type Position struct {
	Address            ident.Address `json:"address"`
	Pool               ident.Address `json:"pool"`
	Depositor          ident.Address `json:"depositor"`
	Balance            uint64        `json:"balance"`
	RewardPerTokenPaid uint64        `json:"rewardPerTokenPaid"`
	Rewards            uint64        `json:"rewards"`
	PendingRewards     uint64        `json:"pendingRewards"`
}

func convertPool(addr ident.Address, p *staking.PoolLedger, stakingAuth, rewardAuth ident.Address, rpt uint64) *Pool {
	return &Pool{
		Address:                 addr,
		Admin:                   p.Admin,
		StakingAsset:            p.StakingAsset,
		RewardAsset:             p.RewardAsset,
		StakingCustodyAuthority: stakingAuth,
		RewardCustodyAuthority:  rewardAuth,
		TotalSupply:             p.TotalSupply,
		RewardPerTokenStored:    p.RewardPerTokenStored,
		RewardPerToken:          rpt,
		LastUpdateTimestamp:     p.LastUpdateTimestamp,
	}
}
